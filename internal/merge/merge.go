package merge

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

// Fetcher loads the text of a feed URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Result is a merged playlist
type Result struct {
	Episodes     []*feed.Episode
	PodcastTitle string
	PodcastImage string
	ChoreoGroups int
	LoadedAt     time.Time
}

// Orchestrator fetches the audio and choreography feeds and reconciles them
type Orchestrator struct {
	fetcher    Fetcher
	reconciler *reconcile.Reconciler
	choreoURL  string
	timeout    time.Duration
	events     *report.EventLogger
}

// NewOrchestrator creates an orchestrator reading choreography from
// songbook.ChoreoFeedURL with no overall deadline
func NewOrchestrator(fetcher Fetcher, reconciler *reconcile.Reconciler) *Orchestrator {
	return &Orchestrator{
		fetcher:    fetcher,
		reconciler: reconciler,
		choreoURL:  songbook.ChoreoFeedURL,
	}
}

// WithChoreoURL overrides the choreography feed
func (o *Orchestrator) WithChoreoURL(u string) *Orchestrator {
	if u != "" {
		o.choreoURL = u
	}
	return o
}

// WithTimeout bounds a whole merge; zero means no deadline
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	o.timeout = d
	return o
}

// WithEvents attaches an event logger to the orchestrator and its reconciler
func (o *Orchestrator) WithEvents(events *report.EventLogger) *Orchestrator {
	o.events = events
	o.reconciler.Events = events
	return o
}

// ChoreoURL returns the choreography feed in use
func (o *Orchestrator) ChoreoURL() string {
	return o.choreoURL
}

// GetMergedEpisodes fetches both feeds concurrently, parses them and
// reconciles every episode. If either fetch fails the merge fails; parse
// errors propagate as feed.ParseError.
func (o *Orchestrator) GetMergedEpisodes(ctx context.Context, audioURL string) (*Result, error) {
	start := time.Now()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	util.DebugLog("Fetching audio and choreo feeds in parallel")

	var audioText, choreoText string
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		text, err := o.fetch(ctx, audioURL)
		audioText = text
		return err
	})
	p.Go(func(ctx context.Context) error {
		text, err := o.fetch(ctx, o.choreoURL)
		choreoText = text
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	util.DebugLog("Parsing audio feed")
	audio, err := feed.ParseAudio(audioText)
	if err != nil {
		_ = o.events.LogError(report.EventParse, audioURL, err)
		return nil, err
	}
	_ = o.events.LogParse("audio", len(audio.Episodes))

	util.DebugLog("Parsing choreo feed")
	groups, err := feed.ParseChoreo(choreoText)
	if err != nil {
		_ = o.events.LogError(report.EventParse, o.choreoURL, err)
		return nil, err
	}
	_ = o.events.LogParse("choreography", groups.Len())

	util.DebugLog("Finished parsing. Starting data merge.")
	o.reconciler.Reconcile(audio.Episodes, groups)
	util.DebugLog("Finished merging data.")

	_ = o.events.LogMerge(audioURL, len(audio.Episodes), groups.Len(), time.Since(start))

	return &Result{
		Episodes:     audio.Episodes,
		PodcastTitle: audio.PodcastTitle,
		PodcastImage: audio.PodcastImage,
		ChoreoGroups: groups.Len(),
		LoadedAt:     time.Now(),
	}, nil
}

// MissingSongs reports songbook entries not covered by episodes, logging the
// closest episode for each
func (o *Orchestrator) MissingSongs(episodes []*feed.Episode) []songbook.SongInfo {
	missing := o.reconciler.MissingSongs(episodes)
	o.reconciler.LogMissing(missing, episodes)
	return missing
}

func (o *Orchestrator) fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	text, err := o.fetcher.Fetch(ctx, url)
	_ = o.events.LogFetch(url, len(text), time.Since(start), err)
	return text, err
}
