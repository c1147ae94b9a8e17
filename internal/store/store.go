package store

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite" // SQLite driver
)

// migrations holds the schema steps in order; migrations[i] brings the
// database to version i+1
var migrations = []string{schemaV1, schemaV2}

// currentSchemaVersion is the version a freshly opened store ends at
var currentSchemaVersion = len(migrations)

// connPragmas run on every new connection (modernc reads them from _pragma)
var connPragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

// Store keeps the listener's preferences in a SQLite file
type Store struct {
	db *sql.DB
}

// dsn builds the modernc.org/sqlite connection string for path
func dsn(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// Open opens or creates the preferences database at path and brings its
// schema up to date
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one writer; every statement shares the connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SQLiteVersion reports the version of the embedded SQLite, or "" if it
// cannot be queried
func SQLiteVersion() string {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return ""
	}
	return version
}

// CheckIntegrity runs PRAGMA integrity_check
func (s *Store) CheckIntegrity() error {
	var result string
	if err := s.db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

// JournalMode returns the journal mode in effect, e.g. "wal"
func (s *Store) JournalMode() (string, error) {
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	return mode, err
}

// migrate applies every pending step of migrations in one transaction
func (s *Store) migrate() error {
	version, err := s.getSchemaVersion()
	if err != nil {
		return err
	}
	if version >= currentSchemaVersion {
		return nil
	}

	return s.Transaction(func(tx *sql.Tx) error {
		for v := version + 1; v <= currentSchemaVersion; v++ {
			if _, err := tx.Exec(migrations[v-1]); err != nil {
				return fmt.Errorf("failed to apply schema v%d: %w", v, err)
			}
			if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
				return fmt.Errorf("failed to record schema v%d: %w", v, err)
			}
		}
		return nil
	})
}

// getSchemaVersion returns the highest applied schema version, 0 for a new file
func (s *Store) getSchemaVersion() (int, error) {
	var tables int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'").Scan(&tables)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}

	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Transaction runs fn in a transaction, committing only if fn succeeds
func (s *Store) Transaction(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
