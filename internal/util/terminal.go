package util

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal checks if the given file descriptor is a terminal
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// GetTerminalWidth returns the width of the terminal, or 80 if not a terminal
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Truncate shortens s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
