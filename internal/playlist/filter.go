package playlist

import (
	"strings"

	"github.com/franz/carolcast/internal/feed"
)

// ChoreoFilters restrict the playlist to episodes with choreography.
// With every flag off, all episodes pass.
type ChoreoFilters struct {
	Any   bool `json:"any"`
	Front bool `json:"front"`
	Back  bool `json:"back"`
	Notes bool `json:"notes"`
}

// Active reports whether any choreography filter is on
func (c ChoreoFilters) Active() bool {
	return c.Any || c.Front || c.Back || c.Notes
}

// Allows reports whether a bundle satisfies every enabled filter
func (c ChoreoFilters) Allows(b feed.ChoreoBundle) bool {
	if !c.Active() {
		return true
	}
	if c.Any && !b.Any() {
		return false
	}
	if c.Front && b.Front == nil {
		return false
	}
	if c.Back && b.Back == nil {
		return false
	}
	if c.Notes && b.Notes == nil {
		return false
	}
	return true
}

// ParseChoreoFilters reads a comma-separated list such as "front,back"
func ParseChoreoFilters(s string) (ChoreoFilters, bool) {
	var c ChoreoFilters
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "any":
			c.Any = true
		case "front":
			c.Front = true
		case "back":
			c.Back = true
		case "notes":
			c.Notes = true
		default:
			return ChoreoFilters{}, false
		}
	}
	return c, true
}

// Filter selects episodes by search text, choreography and favorites
type Filter struct {
	Search        string
	Choreo        ChoreoFilters
	FavoritesOnly bool
}

// Matches reports whether ep passes the filter
func (f Filter) Matches(ep *feed.Episode, prefs *Prefs) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(ep.Title), q) &&
			!strings.Contains(strings.ToLower(ep.Description), q) {
			return false
		}
	}
	if !f.Choreo.Allows(ep.Choreo) {
		return false
	}
	if f.FavoritesOnly && !prefs.IsFavorite(ep.AudioURL) {
		return false
	}
	return true
}

// Apply returns the episodes that pass, preserving order
func (f Filter) Apply(episodes []*feed.Episode, prefs *Prefs) []*feed.Episode {
	out := make([]*feed.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if f.Matches(ep, prefs) {
			out = append(out, ep)
		}
	}
	return out
}
