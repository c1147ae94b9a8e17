package playlist

// Prefs is a read-only view of the listener's saved preferences, keyed by
// episode audio URL
type Prefs struct {
	PlayCounts map[string]int
	Confidence map[string]int
	Favorites  map[string]bool
	Durations  map[string]float64
	Bookmarks  map[string][]float64
}

// NewPrefs returns empty preferences
func NewPrefs() *Prefs {
	return &Prefs{
		PlayCounts: make(map[string]int),
		Confidence: make(map[string]int),
		Favorites:  make(map[string]bool),
		Durations:  make(map[string]float64),
		Bookmarks:  make(map[string][]float64),
	}
}

// PlayCount returns the play count for url, 0 when unknown
func (p *Prefs) PlayCount(url string) int {
	if p == nil {
		return 0
	}
	return p.PlayCounts[url]
}

// ConfidenceFor returns the confidence for url, 0 when unknown
func (p *Prefs) ConfidenceFor(url string) int {
	if p == nil {
		return 0
	}
	return p.Confidence[url]
}

// IsFavorite reports whether url is a favorite
func (p *Prefs) IsFavorite(url string) bool {
	if p == nil {
		return false
	}
	return p.Favorites[url]
}

// CachedDuration returns a duration learned during playback
func (p *Prefs) CachedDuration(url string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	d, ok := p.Durations[url]
	return d, ok
}
