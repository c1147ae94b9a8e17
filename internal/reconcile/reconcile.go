package reconcile

import (
	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/meta"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

const (
	// ChoreoThreshold is the minimum score (inclusive) to attach a choreography group
	ChoreoThreshold = 0.5

	// SongThreshold is the score a fuzzy songbook match must exceed
	SongThreshold = 0.4

	// MissingThreshold is the score an episode must exceed to cover a songbook entry
	MissingThreshold = 0.7
)

// SimilarityFunc scores two texts in [0,1]
type SimilarityFunc func(a, b string) float64

// Reconciler enriches episodes with choreography, songbook and sheet-music
// data. It only reads its indexes, so one Reconciler may serve concurrent callers.
type Reconciler struct {
	Songs      *songbook.Index
	SheetMusic songbook.SheetMusic
	Similarity SimilarityFunc
	Events     *report.EventLogger
}

// New creates a reconciler over the given songbook and score indexes
func New(songs *songbook.Index, sheetMusic songbook.SheetMusic) *Reconciler {
	return &Reconciler{
		Songs:      songs,
		SheetMusic: sheetMusic,
		Similarity: meta.Similarity,
	}
}

// NewDefault creates a reconciler over the built-in songbook
func NewDefault() *Reconciler {
	return New(songbook.DefaultIndex(), songbook.DefaultSheetMusic())
}

// WithEvents attaches an event logger for match decisions
func (r *Reconciler) WithEvents(events *report.EventLogger) *Reconciler {
	r.Events = events
	return r
}

// ChoreoMatch is the best-scoring choreography group for an episode
type ChoreoMatch struct {
	Key    string
	Bundle *feed.ChoreoBundle
	Score  float64
}

// Accepted reports whether the match clears ChoreoThreshold
func (m ChoreoMatch) Accepted() bool {
	return m.Bundle != nil && m.Score >= ChoreoThreshold
}

// MatchChoreo scans every group and keeps the highest score, taking the best
// of the episode's title key, raw title and audio filename key against the
// group key. Ties keep the group registered first.
func (r *Reconciler) MatchChoreo(ep *feed.Episode, groups *feed.ChoreoGroups) ChoreoMatch {
	titleKey := meta.BaseKeyFromTitle(ep.Title)
	urlKey := meta.BaseKeyFromFilename(ep.AudioURL)

	best := ChoreoMatch{Score: -1}
	groups.Each(func(key string, bundle *feed.ChoreoBundle) {
		s1 := r.Similarity(titleKey, key)
		s2 := r.Similarity(ep.Title, key)
		s3 := 0.0
		if urlKey != "" {
			s3 = r.Similarity(urlKey, key)
		}

		score := max(s1, s2, s3)
		if score > best.Score {
			best = ChoreoMatch{Key: key, Bundle: bundle, Score: score}
		}
	})

	return best
}

// SongMatch is a songbook entry matched to an episode
type SongMatch struct {
	Song   songbook.SongInfo
	Key    string
	Score  float64
	Method string // "exact" or "fuzzy"
}

// MatchSong looks the episode title up in the songbook by exact matching key,
// then falls back to the highest-scoring key above SongThreshold. Ties keep
// the key inserted first.
func (r *Reconciler) MatchSong(title string) (SongMatch, bool) {
	epKey := meta.MatchingKey(title)

	if song, ok := r.Songs.Lookup(epKey); ok {
		return SongMatch{Song: song, Key: epKey, Score: 1, Method: "exact"}, true
	}

	best := SongMatch{Score: SongThreshold, Method: "fuzzy"}
	found := false
	r.Songs.Each(func(key string, song songbook.SongInfo) {
		score := r.Similarity(epKey, key)
		if score > best.Score {
			best.Song = song
			best.Key = key
			best.Score = score
			found = true
		}
	})

	return best, found
}

// MatchSheetMusic returns the score URL for an exact matching-key hit
func (r *Reconciler) MatchSheetMusic(title string) (string, bool) {
	return r.SheetMusic.Lookup(meta.MatchingKey(title))
}

// ReconcileEpisode enriches one episode in place. Misses leave the
// corresponding fields untouched.
func (r *Reconciler) ReconcileEpisode(ep *feed.Episode, groups *feed.ChoreoGroups) {
	if groups.Len() > 0 {
		m := r.MatchChoreo(ep, groups)
		_ = r.Events.LogChoreoMatch(ep.Title, m.Key, m.Score, m.Accepted())
		if m.Accepted() {
			ep.Choreo = *m.Bundle
			util.DebugLog("Choreo: '%s' -> '%s' (%.2f)", ep.Title, m.Key, m.Score)
		}
	}

	if m, ok := r.MatchSong(ep.Title); ok {
		ep.SongName = m.Song.Name
		ep.SongKey = m.Song.Key
		ep.SongPage = m.Song.Page
		_ = r.Events.LogSongMatch(ep.Title, m.Key, m.Song.Name, m.Method, m.Score)
	}

	if u, ok := r.MatchSheetMusic(ep.Title); ok {
		ep.SheetMusicURL = u
		_ = r.Events.LogSheetMusic(ep.Title, u)
	}
}

// Reconcile enriches every episode in place against the choreography groups
// and the songbook. groups must be fully built; it is only read.
func (r *Reconciler) Reconcile(episodes []*feed.Episode, groups *feed.ChoreoGroups) {
	for _, ep := range episodes {
		r.ReconcileEpisode(ep, groups)
	}
}
