package store

import (
	"database/sql"
	"fmt"
	"math"
)

// BookmarkTolerance is how close (in seconds) a new bookmark may come to an
// existing one before it is treated as a duplicate
const BookmarkTolerance = 0.5

// Bookmarks returns the bookmarked positions of url in ascending order
func (s *Store) Bookmarks(url string) ([]float64, error) {
	rows, err := s.db.Query("SELECT position FROM bookmarks WHERE audio_url = ? ORDER BY position", url)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	positions := make([]float64, 0)
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// AddBookmark saves a position unless one already exists within
// BookmarkTolerance. It reports whether the bookmark was added.
func (s *Store) AddBookmark(url string, position float64) (bool, error) {
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return false, fmt.Errorf("invalid bookmark position %v", position)
	}

	added := false
	err := s.Transaction(func(tx *sql.Tx) error {
		var near int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM bookmarks
			WHERE audio_url = ? AND ABS(position - ?) < ?
		`, url, position, BookmarkTolerance).Scan(&near)
		if err != nil {
			return fmt.Errorf("failed to check bookmarks: %w", err)
		}
		if near > 0 {
			return nil
		}

		if _, err := tx.Exec("INSERT INTO bookmarks (audio_url, position) VALUES (?, ?)", url, position); err != nil {
			return fmt.Errorf("failed to add bookmark: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveBookmark deletes the bookmark at exactly position and reports
// whether one was removed
func (s *Store) RemoveBookmark(url string, position float64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM bookmarks WHERE audio_url = ? AND position = ?", url, position)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
