package songbook

import "github.com/franz/carolcast/internal/meta"

// Index maps matching keys to songbook entries. Keys iterate in the order they
// were first inserted; when two entries share a key the later one wins.
type Index struct {
	songs   []SongInfo
	keys    []string
	entries map[string]SongInfo
}

// NewIndex builds an index over songs keyed by meta.MatchingKey of each name
func NewIndex(songs []SongInfo) *Index {
	ix := &Index{
		songs:   append([]SongInfo(nil), songs...),
		entries: make(map[string]SongInfo, len(songs)),
	}
	for _, s := range songs {
		key := meta.MatchingKey(s.Name)
		if _, ok := ix.entries[key]; !ok {
			ix.keys = append(ix.keys, key)
		}
		ix.entries[key] = s
	}
	return ix
}

// Lookup returns the entry for an exact matching key
func (ix *Index) Lookup(key string) (SongInfo, bool) {
	s, ok := ix.entries[key]
	return s, ok
}

// Songs returns every indexed entry in listing order, including entries
// whose key was later overwritten
func (ix *Index) Songs() []SongInfo {
	return append([]SongInfo(nil), ix.songs...)
}

// Len returns the number of distinct keys
func (ix *Index) Len() int {
	return len(ix.keys)
}

// Each calls fn for every key in insertion order
func (ix *Index) Each(fn func(key string, song SongInfo)) {
	for _, k := range ix.keys {
		fn(k, ix.entries[k])
	}
}

// SheetMusic maps matching keys to score URLs
type SheetMusic map[string]string

// Lookup returns the score URL for an exact matching key
func (m SheetMusic) Lookup(key string) (string, bool) {
	u, ok := m[key]
	return u, ok
}

var (
	defaultIndex      = NewIndex(Songs)
	defaultSheetMusic = buildSheetMusic()
)

func buildSheetMusic() SheetMusic {
	m := make(SheetMusic, len(sheetMusicByTitle))
	for _, s := range sheetMusicByTitle {
		m[meta.MatchingKey(s.title)] = s.url
	}
	return m
}

// DefaultIndex returns the index over Songs. It is built once and must not be modified.
func DefaultIndex() *Index {
	return defaultIndex
}

// DefaultSheetMusic returns the built-in score index
func DefaultSheetMusic() SheetMusic {
	return defaultSheetMusic
}
