package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/franz/carolcast/internal/songbook"
)

const (
	// MaxAutoConfidence caps the confidence earned from plays alone
	MaxAutoConfidence = 70

	// settingVoice stores the selected voice part
	settingVoice = "voice"
)

// AutoConfidence is the confidence implied by a play count:
// min(70, floor(sqrt(plays) * 10))
func AutoConfidence(plays int) int {
	if plays <= 0 {
		return 0
	}
	return min(MaxAutoConfidence, int(math.Floor(math.Sqrt(float64(plays))*10)))
}

// Voice returns the selected voice part, or songbook.DefaultVoice if none was saved
func (s *Store) Voice() (songbook.Voice, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", settingVoice).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return songbook.DefaultVoice, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get voice: %w", err)
	}
	return songbook.ParseVoice(value)
}

// SetVoice saves the selected voice part
func (s *Store) SetVoice(v songbook.Voice) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, settingVoice, string(v))
	if err != nil {
		return fmt.Errorf("failed to save voice: %w", err)
	}
	return nil
}

// PlayCount returns how often url has been played
func (s *Store) PlayCount(url string) (int, error) {
	var plays int
	err := s.db.QueryRow("SELECT plays FROM play_counts WHERE audio_url = ?", url).Scan(&plays)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get play count: %w", err)
	}
	return plays, nil
}

// BumpPlayCount records one more play and raises confidence if the new
// count implies a higher level. It returns the new count.
func (s *Store) BumpPlayCount(url string) (int, error) {
	var plays int
	err := s.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO play_counts (audio_url, plays) VALUES (?, 1)
			ON CONFLICT(audio_url) DO UPDATE SET
				plays = plays + 1,
				updated_at = CURRENT_TIMESTAMP
			RETURNING plays
		`, url).Scan(&plays)
		if err != nil {
			return fmt.Errorf("failed to bump play count: %w", err)
		}
		return raiseConfidence(tx, url, AutoConfidence(plays))
	})
	if err != nil {
		return 0, err
	}
	return plays, nil
}

// SetPlayCount overwrites the play count (negative values become 0) and
// raises confidence if the count implies a higher level
func (s *Store) SetPlayCount(url string, plays int) error {
	plays = max(0, plays)
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO play_counts (audio_url, plays) VALUES (?, ?)
			ON CONFLICT(audio_url) DO UPDATE SET
				plays = excluded.plays,
				updated_at = CURRENT_TIMESTAMP
		`, url, plays)
		if err != nil {
			return fmt.Errorf("failed to set play count: %w", err)
		}
		return raiseConfidence(tx, url, AutoConfidence(plays))
	})
}

// raiseConfidence stores level only when it exceeds the current confidence
func raiseConfidence(tx *sql.Tx, url string, level int) error {
	if level <= 0 {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO confidence (audio_url, level) VALUES (?, ?)
		ON CONFLICT(audio_url) DO UPDATE SET
			level = excluded.level,
			updated_at = CURRENT_TIMESTAMP
		WHERE excluded.level > confidence.level
	`, url, level)
	if err != nil {
		return fmt.Errorf("failed to raise confidence: %w", err)
	}
	return nil
}

// Confidence returns the saved confidence for url, 0 when unset
func (s *Store) Confidence(url string) (int, error) {
	var level int
	err := s.db.QueryRow("SELECT level FROM confidence WHERE audio_url = ?", url).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get confidence: %w", err)
	}
	return level, nil
}

// SetConfidence saves a confidence level, clamped to 0-100
func (s *Store) SetConfidence(url string, level int) error {
	level = min(100, max(0, level))
	_, err := s.db.Exec(`
		INSERT INTO confidence (audio_url, level) VALUES (?, ?)
		ON CONFLICT(audio_url) DO UPDATE SET
			level = excluded.level,
			updated_at = CURRENT_TIMESTAMP
	`, url, level)
	if err != nil {
		return fmt.Errorf("failed to set confidence: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new state
func (s *Store) ToggleFavorite(url string) (bool, error) {
	var favorite bool
	err := s.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM favorites WHERE audio_url = ?", url)
		if err != nil {
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			favorite = false
			return nil
		}
		if _, err := tx.Exec("INSERT INTO favorites (audio_url) VALUES (?)", url); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		favorite = true
		return nil
	})
	return favorite, err
}

// IsFavorite reports whether url is a favorite
func (s *Store) IsFavorite(url string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM favorites WHERE audio_url = ?", url).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to get favorite: %w", err)
	}
	return n > 0, nil
}

// CacheDuration remembers the playback duration of url. Non-finite or
// non-positive durations are ignored.
func (s *Store) CacheDuration(url string, seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO durations (audio_url, seconds) VALUES (?, ?)
		ON CONFLICT(audio_url) DO UPDATE SET seconds = excluded.seconds
	`, url, seconds)
	if err != nil {
		return fmt.Errorf("failed to cache duration: %w", err)
	}
	return nil
}
