package merge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/franz/carolcast/internal/fetch"
	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/util"
)

const audioFeed = `<rss><channel><title>DCI Alto</title>
<image><url>http://example.com/cover.jpg</url></image>
<item><title>3 Silent Night</title><enclosure url="http://example.com/a/silent-night.mp3"/><itunes:duration xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">2:30</itunes:duration></item>
<item><title>An Old-Fashioned Christmas</title><enclosure url="http://example.com/a/old-fashioned.mp3"/></item>
<item><title>Warm-up</title><enclosure url="http://example.com/a/warmup.mp3"/></item>
</channel></rss>`

const choreoFeed = `<rss><channel>
<item><title>Silent Night Front</title><enclosure url="https://example.com/c/silent-night-front.mp4" type="video/mp4"/></item>
<item><title>Silent Night Back</title><enclosure url="https://example.com/c/silent-night-back.mp4" type="video/mp4"/></item>
</channel></rss>`

// mapFetcher serves canned documents and records requested URLs
type mapFetcher struct {
	mu    sync.Mutex
	docs  map[string]string
	errs  map[string]error
	calls []string
}

func (f *mapFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.docs[url], nil
}

func TestGetMergedEpisodes(t *testing.T) {
	f := &mapFetcher{docs: map[string]string{
		"audio":  audioFeed,
		"choreo": choreoFeed,
	}}
	o := NewOrchestrator(f, reconcile.NewDefault()).WithChoreoURL("choreo")

	result, err := o.GetMergedEpisodes(context.Background(), "audio")
	if err != nil {
		t.Fatalf("GetMergedEpisodes failed: %v", err)
	}

	if len(f.calls) != 2 {
		t.Errorf("expected 2 fetches, got %v", f.calls)
	}
	if result.PodcastTitle != "DCI Alto" || result.PodcastImage != "https://example.com/cover.jpg" {
		t.Errorf("channel = %q / %q", result.PodcastTitle, result.PodcastImage)
	}
	if result.ChoreoGroups != 1 {
		t.Errorf("ChoreoGroups = %d, expected 1", result.ChoreoGroups)
	}
	if len(result.Episodes) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(result.Episodes))
	}

	silent := result.Episodes[0]
	if silent.Title != "Silent Night" || silent.Choreo.Front == nil || silent.Choreo.Back == nil {
		t.Errorf("Silent Night = %+v", silent)
	}
	if silent.SongPage != "96" {
		t.Errorf("SongPage = %q, expected 96", silent.SongPage)
	}

	old := result.Episodes[1]
	if old.SheetMusicURL == "" || old.SongKey != "C" {
		t.Errorf("An Old-Fashioned Christmas = %+v", old)
	}
	if old.Choreo.Any() {
		t.Error("An Old-Fashioned Christmas should have no choreography")
	}

	warmup := result.Episodes[2]
	if warmup.SongKey != "" || warmup.Choreo.Any() {
		t.Errorf("Warm-up should stay unenriched: %+v", warmup)
	}

	missing := o.MissingSongs(result.Episodes)
	for _, s := range missing {
		if s.Name == "Silent Night" || s.Name == "An Old-Fashioned Christmas" {
			t.Errorf("%q should not be missing", s.Name)
		}
	}
}

func TestGetMergedEpisodes_FetchFailure(t *testing.T) {
	f := &mapFetcher{
		docs: map[string]string{"audio": audioFeed},
		errs: map[string]error{"choreo": &fetch.FeedUnavailableError{URL: "choreo"}},
	}
	o := NewOrchestrator(f, reconcile.NewDefault()).WithChoreoURL("choreo")

	_, err := o.GetMergedEpisodes(context.Background(), "audio")
	if err == nil {
		t.Fatal("expected error when the choreography feed is unavailable")
	}
	if !errors.Is(err, util.ErrFeedUnavailable) {
		t.Errorf("error %v should match ErrFeedUnavailable", err)
	}
	var fe *fetch.FeedUnavailableError
	if !errors.As(err, &fe) || fe.URL != "choreo" {
		t.Errorf("error should carry the choreography URL, got %v", err)
	}
}

func TestGetMergedEpisodes_ParseFailure(t *testing.T) {
	f := &mapFetcher{docs: map[string]string{
		"audio":  "<rss><channel><item>",
		"choreo": choreoFeed,
	}}
	o := NewOrchestrator(f, reconcile.NewDefault()).WithChoreoURL("choreo")

	_, err := o.GetMergedEpisodes(context.Background(), "audio")
	if !errors.Is(err, util.ErrFeedParse) {
		t.Errorf("error %v should match ErrFeedParse", err)
	}
}

func TestGetMergedEpisodes_HTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/alto/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(audioFeed))
	})
	mux.HandleFunc("/choreography/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(choreoFeed))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	events, err := report.NewEventLogger(t.TempDir(), report.LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer events.Close()

	o := NewOrchestrator(fetch.NewFetcher([]string{srv.URL + "/relay?url="}), reconcile.NewDefault()).
		WithChoreoURL(srv.URL + "/choreography/feed.xml").
		WithEvents(events)

	result, err := o.GetMergedEpisodes(context.Background(), srv.URL+"/alto/feed.xml")
	if err != nil {
		t.Fatalf("GetMergedEpisodes failed: %v", err)
	}
	if len(result.Episodes) != 3 || !result.Episodes[0].Choreo.Any() {
		t.Errorf("unexpected merge result: %+v", result)
	}
}

func TestGetMergedEpisodes_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	o := NewOrchestrator(fetch.NewFetcher([]string{srv.URL + "/relay?url="}), reconcile.NewDefault()).
		WithChoreoURL(srv.URL + "/choreo.xml").
		WithTimeout(50 * time.Millisecond)

	start := time.Now()
	_, err := o.GetMergedEpisodes(context.Background(), srv.URL+"/audio.xml")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error %v should wrap context.DeadlineExceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("merge did not honor the deadline")
	}
}
