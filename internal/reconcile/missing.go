package reconcile

import (
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/meta"
	"github.com/franz/carolcast/internal/songbook"
)

// MissingSongs returns the songbook entries that no episode covers, ordered
// by name. An entry is covered when some episode's matching key scores above
// MissingThreshold against the entry's matching key.
func (r *Reconciler) MissingSongs(episodes []*feed.Episode) []songbook.SongInfo {
	episodeKeys := make([]string, len(episodes))
	for i, ep := range episodes {
		episodeKeys[i] = meta.MatchingKey(ep.Title)
	}

	missing := make([]songbook.SongInfo, 0)
	for _, song := range r.Songs.Songs() {
		songKey := meta.MatchingKey(song.Name)
		covered := slices.ContainsFunc(episodeKeys, func(k string) bool {
			return r.Similarity(songKey, k) > MissingThreshold
		})
		if !covered {
			missing = append(missing, song)
		}
	}

	SortSongsByName(missing)
	return missing
}

// SortSongsByName orders songs by name using English collation
func SortSongsByName(songs []songbook.SongInfo) {
	c := collate.New(language.English)
	slices.SortStableFunc(songs, func(a, b songbook.SongInfo) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// ClosestEpisode returns the episode title nearest to a songbook entry by
// Jaro-Winkler similarity of matching keys, as a hint for songs reported
// missing. It returns "" when there are no episodes.
func ClosestEpisode(song songbook.SongInfo, episodes []*feed.Episode) (string, float64) {
	songKey := meta.MatchingKey(song.Name)
	jw := metrics.NewJaroWinkler()

	bestTitle := ""
	bestScore := 0.0
	for _, ep := range episodes {
		score := strutil.Similarity(songKey, meta.MatchingKey(ep.Title), jw)
		if bestTitle == "" || score > bestScore {
			bestTitle = ep.Title
			bestScore = score
		}
	}
	return bestTitle, bestScore
}

// LogMissing records each missing song with its closest episode
func (r *Reconciler) LogMissing(missing []songbook.SongInfo, episodes []*feed.Episode) {
	if r.Events == nil {
		return
	}
	for _, song := range missing {
		title, score := ClosestEpisode(song, episodes)
		_ = r.Events.LogMissing(song.Name, title, score)
	}
}
