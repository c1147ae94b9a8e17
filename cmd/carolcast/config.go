package main

import (
	"fmt"

	"github.com/franz/carolcast/internal/fetch"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/store"
	"github.com/franz/carolcast/internal/util"
)

const (
	defaultDBPath     = "carolcast.db"
	defaultEventsDir  = "artifacts"
	defaultListenAddr = ":8080"
)

// openStore opens the preferences database named by the db key
func openStore() (*store.Store, error) {
	dbPath := util.GetConfigString("db", defaultDBPath)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// resolveVoice picks the voice part: the voice key when set, else the part
// saved in the database, else the default part
func resolveVoice(db *store.Store) (songbook.Voice, error) {
	if v := util.GetConfigString("voice", ""); v != "" {
		return songbook.ParseVoice(v)
	}
	if db == nil {
		return songbook.DefaultVoice, nil
	}
	return db.Voice()
}

// resolveFeedURL returns the audio feed to load. feed_url wins over the voice part.
func resolveFeedURL(db *store.Store) (string, songbook.Voice, error) {
	voice, err := resolveVoice(db)
	if err != nil {
		return "", "", err
	}
	if u := util.GetConfigString("feed_url", ""); u != "" {
		return u, voice, nil
	}
	u, err := songbook.FeedURL(string(voice))
	if err != nil {
		return "", "", err
	}
	return u, voice, nil
}

// newFetcher builds the resilient fetcher from the relays key
func newFetcher() *fetch.Fetcher {
	return fetch.NewFetcher(util.GetConfigStringSlice("relays", fetch.DefaultRelays))
}
