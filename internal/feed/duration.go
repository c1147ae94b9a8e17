package feed

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDuration parses "H:MM:SS", "MM:SS" or plain seconds. Each component is
// read like an integer prefix ("05" -> 5, "12s" -> 12); a component with no
// leading digits invalidates the whole value. More than three components
// yield 0.
func ParseDuration(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	raw := strings.Split(strings.TrimSpace(s), ":")
	parts := make([]int, len(raw))
	for i, p := range raw {
		n, ok := leadingInt(p)
		if !ok {
			return 0, false
		}
		parts[i] = n
	}

	switch len(parts) {
	case 3:
		return parts[0]*3600 + parts[1]*60 + parts[2], true
	case 2:
		return parts[0]*60 + parts[1], true
	case 1:
		return parts[0], true
	default:
		return 0, true
	}
}

// leadingInt reads an optionally signed run of digits after leading whitespace
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatTime renders seconds as m:ss
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	s := int(math.Max(0, math.Floor(seconds)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// durationLabel is the display string for a parsed duration
func durationLabel(seconds *int) string {
	if seconds == nil || *seconds == 0 {
		return "..."
	}
	return FormatTime(float64(*seconds))
}
