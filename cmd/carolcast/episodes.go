package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/util"
)

// numbering assigns each episode its 1-based position in book order, so the
// numbers printed by list stay valid whatever the sort or filter
func numbering(episodes []*feed.Episode) ([]*feed.Episode, map[string]int) {
	ordered := playlist.Sort(episodes, playlist.SortBookOrder, nil)
	index := make(map[string]int, len(ordered))
	for i, ep := range ordered {
		index[ep.ID] = i + 1
	}
	return ordered, index
}

// resolveEpisode finds an episode by list number, id, or title. A title
// matches exactly (ignoring case) first, then as a unique substring.
func resolveEpisode(episodes []*feed.Episode, ref string) (*feed.Episode, error) {
	ref = strings.TrimSpace(ref)
	ordered, _ := numbering(episodes)

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ordered) {
			return nil, fmt.Errorf("%w: episode #%d (playlist has %d)", util.ErrNotFound, n, len(ordered))
		}
		return ordered[n-1], nil
	}

	if ep, ok := playlist.Find(ordered, ref); ok {
		return ep, nil
	}

	var partial []*feed.Episode
	needle := strings.ToLower(ref)
	for _, ep := range ordered {
		title := strings.ToLower(ep.Title)
		if title == needle {
			return ep, nil
		}
		if strings.Contains(title, needle) {
			partial = append(partial, ep)
		}
	}

	switch len(partial) {
	case 0:
		return nil, fmt.Errorf("%w: no episode matches %q", util.ErrNotFound, ref)
	case 1:
		return partial[0], nil
	default:
		names := make([]string, 0, len(partial))
		for _, ep := range partial {
			names = append(names, ep.Title)
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// choreoFlags renders the filled choreography slots, e.g. "F B -"
func choreoFlags(b feed.ChoreoBundle) string {
	slot := func(filled bool, c string) string {
		if filled {
			return c
		}
		return "-"
	}
	return slot(b.Front != nil, "F") + " " + slot(b.Back != nil, "B") + " " + slot(b.Notes != nil, "N")
}

// lengthOf prefers the feed duration, then one cached during playback
func lengthOf(ep *feed.Episode, prefs *playlist.Prefs) string {
	if ep.DurationSeconds != nil && *ep.DurationSeconds > 0 {
		return ep.Duration
	}
	if d, ok := prefs.CachedDuration(ep.AudioURL); ok {
		return feed.FormatTime(d)
	}
	return ep.Duration
}
