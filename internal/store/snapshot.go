package store

import (
	"fmt"

	"github.com/franz/carolcast/internal/playlist"
)

// Snapshot loads every preference into memory for filtering and sorting
func (s *Store) Snapshot() (*playlist.Prefs, error) {
	p := playlist.NewPrefs()

	if err := s.scanPairs("SELECT audio_url, plays FROM play_counts", func(url string, v float64) {
		p.PlayCounts[url] = int(v)
	}); err != nil {
		return nil, err
	}
	if err := s.scanPairs("SELECT audio_url, level FROM confidence", func(url string, v float64) {
		p.Confidence[url] = int(v)
	}); err != nil {
		return nil, err
	}
	if err := s.scanPairs("SELECT audio_url, 1 FROM favorites", func(url string, _ float64) {
		p.Favorites[url] = true
	}); err != nil {
		return nil, err
	}
	if err := s.scanPairs("SELECT audio_url, seconds FROM durations", func(url string, v float64) {
		p.Durations[url] = v
	}); err != nil {
		return nil, err
	}
	if err := s.scanPairs("SELECT audio_url, position FROM bookmarks ORDER BY audio_url, position", func(url string, v float64) {
		p.Bookmarks[url] = append(p.Bookmarks[url], v)
	}); err != nil {
		return nil, err
	}

	return p, nil
}

// scanPairs runs a two-column (url, number) query and feeds each row to fn
func (s *Store) scanPairs(query string, fn func(url string, v float64)) error {
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		var v float64
		if err := rows.Scan(&url, &v); err != nil {
			return fmt.Errorf("failed to scan preferences: %w", err)
		}
		fn(url, v)
	}
	return rows.Err()
}
