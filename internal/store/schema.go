package store

// Schema v1 - listener preferences, keyed by episode audio URL
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Simple key/value settings (selected voice part)
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

-- How often each episode has been played
CREATE TABLE IF NOT EXISTS play_counts (
  audio_url TEXT PRIMARY KEY,
  plays INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Self-rated confidence 0-100
CREATE TABLE IF NOT EXISTS confidence (
  audio_url TEXT PRIMARY KEY,
  level INTEGER NOT NULL,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Favorite episodes; presence means favorite
CREATE TABLE IF NOT EXISTS favorites (
  audio_url TEXT PRIMARY KEY,
  added_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Bookmarked playback positions in seconds
CREATE TABLE IF NOT EXISTS bookmarks (
  audio_url TEXT NOT NULL,
  position REAL NOT NULL,
  added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (audio_url, position)
);

-- Durations learned during playback for episodes whose feed omits one
CREATE TABLE IF NOT EXISTS durations (
  audio_url TEXT PRIMARY KEY,
  seconds REAL NOT NULL
);
`

// Schema v2 - ordering indexes for the most-played and confidence views
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_play_counts_plays ON play_counts(plays DESC);
CREATE INDEX IF NOT EXISTS idx_confidence_level ON confidence(level DESC);
`
