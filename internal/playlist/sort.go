package playlist

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/util"
)

// SortMode orders the playlist
type SortMode string

const (
	SortBookOrder      SortMode = "bookOrder"
	SortAlpha          SortMode = "alpha"
	SortMostPlayed     SortMode = "mostPlayed"
	SortLeastPlayed    SortMode = "leastPlayed"
	SortShortest       SortMode = "shortest"
	SortLongest        SortMode = "longest"
	SortConfidenceHigh SortMode = "confidenceHigh"
	SortConfidenceLow  SortMode = "confidenceLow"
)

// SortModes lists every mode in menu order
var SortModes = []SortMode{
	SortBookOrder, SortAlpha, SortMostPlayed, SortLeastPlayed,
	SortShortest, SortLongest, SortConfidenceHigh, SortConfidenceLow,
}

// ParseSortMode matches a mode name case-insensitively
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortBookOrder, nil
	}
	for _, m := range SortModes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort mode %q", util.ErrInvalidConfig, s)
}

// unknownPage places episodes without a songbook page last in book order
const unknownPage = 999

// bookPage reads the leading integer of a songbook page
func bookPage(page string) int {
	if page == "" {
		return unknownPage
	}
	end := 0
	for end < len(page) && page[end] >= '0' && page[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(page[:end])
	if err != nil {
		return unknownPage
	}
	return n
}

// duration prefers the feed duration, then one learned during playback
func duration(ep *feed.Episode, prefs *Prefs) float64 {
	if ep.DurationSeconds != nil {
		return float64(*ep.DurationSeconds)
	}
	if d, ok := prefs.CachedDuration(ep.AudioURL); ok {
		return d
	}
	return math.Inf(1)
}

// Sort returns a sorted copy of episodes. Sorting is stable, so equal
// episodes keep their feed order.
func Sort(episodes []*feed.Episode, mode SortMode, prefs *Prefs) []*feed.Episode {
	out := slices.Clone(episodes)
	titles := collate.New(language.English)

	var less func(a, b *feed.Episode) int
	switch mode {
	case SortBookOrder:
		less = func(a, b *feed.Episode) int {
			if c := cmp.Compare(bookPage(a.SongPage), bookPage(b.SongPage)); c != 0 {
				return c
			}
			return titles.CompareString(a.Title, b.Title)
		}
	case SortAlpha:
		less = func(a, b *feed.Episode) int {
			return titles.CompareString(a.Title, b.Title)
		}
	case SortMostPlayed:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(prefs.PlayCount(b.AudioURL), prefs.PlayCount(a.AudioURL))
		}
	case SortLeastPlayed:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(prefs.PlayCount(a.AudioURL), prefs.PlayCount(b.AudioURL))
		}
	case SortShortest:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(duration(a, prefs), duration(b, prefs))
		}
	case SortLongest:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(duration(b, prefs), duration(a, prefs))
		}
	case SortConfidenceHigh:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(prefs.ConfidenceFor(b.AudioURL), prefs.ConfidenceFor(a.AudioURL))
		}
	case SortConfidenceLow:
		less = func(a, b *feed.Episode) int {
			return cmp.Compare(prefs.ConfidenceFor(a.AudioURL), prefs.ConfidenceFor(b.AudioURL))
		}
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

// View filters then sorts
func View(episodes []*feed.Episode, f Filter, mode SortMode, prefs *Prefs) []*feed.Episode {
	return Sort(f.Apply(episodes, prefs), mode, prefs)
}
