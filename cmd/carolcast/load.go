package main

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/franz/carolcast/internal/merge"
	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/store"
	"github.com/franz/carolcast/internal/util"
)

// session bundles what every playlist command needs
type session struct {
	db           *store.Store
	events       *report.EventLogger
	orchestrator *merge.Orchestrator
	feedURL      string
	voice        songbook.Voice
}

// openSession opens the preferences database and wires the fetcher,
// reconciler and event log into a merge orchestrator
func openSession(withEvents bool) (*session, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}

	feedURL, voice, err := resolveFeedURL(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	events := report.NullLogger()
	if withEvents {
		level := report.LevelInfo
		if viper.GetBool("verbose") {
			level = report.LevelDebug
		}
		events, err = report.NewEventLogger(util.GetConfigString("events_dir", defaultEventsDir), level)
		if err != nil {
			util.WarnLog("Event log disabled: %v", err)
			events = report.NullLogger()
		}
	}

	o := merge.NewOrchestrator(newFetcher(), reconcile.NewDefault()).
		WithChoreoURL(util.GetConfigString("choreo_feed_url", "")).
		WithTimeout(util.GetConfigDuration("timeout", 0)).
		WithEvents(events)

	return &session{
		db:           db,
		events:       events,
		orchestrator: o,
		feedURL:      feedURL,
		voice:        voice,
	}, nil
}

// Close releases the database and event log
func (s *session) Close() {
	if err := s.events.Close(); err != nil {
		util.WarnLog("Failed to close event log: %v", err)
	}
	if err := s.db.Close(); err != nil {
		util.WarnLog("Failed to close database: %v", err)
	}
}

// load merges the feeds, showing a spinner with a loading pun on terminals
func (s *session) load(ctx context.Context) (*merge.Result, error) {
	util.DebugLog("Loading %s feed: %s", s.voice.Title(), s.feedURL)

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stderr.Fd()) && util.GetLogLevel() < util.LevelError {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(songbook.RandomPun()),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	done := make(chan struct{})
	if bar != nil {
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					bar.Add(1)
				}
			}
		}()
	}

	result, err := s.orchestrator.GetMergedEpisodes(ctx, s.feedURL)
	close(done)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	util.DebugLog("Merged %d episodes with %d choreography groups", len(result.Episodes), result.ChoreoGroups)
	return result, nil
}
