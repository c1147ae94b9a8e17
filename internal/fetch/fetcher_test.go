package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/franz/carolcast/internal/util"
)

// countingServer answers every request with status and body and counts hits
func countingServer(t *testing.T, status int, body string, hits *int32, lastQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if lastQuery != nil {
			*lastQuery = r.URL.RawQuery
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_DirectSuccess(t *testing.T) {
	var direct, relayA, relayB int32
	d := countingServer(t, http.StatusOK, "<rss/>", &direct, nil)
	a := countingServer(t, http.StatusOK, "relay a", &relayA, nil)
	b := countingServer(t, http.StatusOK, "relay b", &relayB, nil)

	f := NewFetcher([]string{a.URL + "/raw?url=", b.URL + "/?"})
	text, err := f.Fetch(context.Background(), d.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if text != "<rss/>" {
		t.Errorf("Fetch() = %q, expected direct body", text)
	}
	if direct != 1 || relayA != 0 || relayB != 0 {
		t.Errorf("call counts = %d/%d/%d, expected 1/0/0", direct, relayA, relayB)
	}
}

func TestFetch_EmptyDirectFallsBackToFirstRelay(t *testing.T) {
	var direct, relayA, relayB int32
	var relayQuery string
	d := countingServer(t, http.StatusOK, "   \n", &direct, nil)
	a := countingServer(t, http.StatusOK, "<rss>from relay</rss>", &relayA, &relayQuery)
	b := countingServer(t, http.StatusOK, "relay b", &relayB, nil)

	target := d.URL + "/dci/alto/feed.xml"
	f := NewFetcher([]string{a.URL + "/raw?url=", b.URL + "/?"})

	text, err := f.Fetch(context.Background(), target)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if text != "<rss>from relay</rss>" {
		t.Errorf("Fetch() = %q, expected first relay body", text)
	}
	if direct != 1 || relayA != 1 || relayB != 0 {
		t.Errorf("call counts = %d/%d/%d, expected 1/1/0", direct, relayA, relayB)
	}

	q, err := url.ParseQuery(relayQuery)
	if err != nil {
		t.Fatalf("bad relay query %q: %v", relayQuery, err)
	}
	if q.Get("url") != target {
		t.Errorf("relay received url=%q, expected %q", q.Get("url"), target)
	}
}

func TestFetch_ErrorStatusFallsThrough(t *testing.T) {
	var direct, relayA, relayB int32
	d := countingServer(t, http.StatusInternalServerError, "boom", &direct, nil)
	a := countingServer(t, http.StatusForbidden, "nope", &relayA, nil)
	b := countingServer(t, http.StatusOK, "relay b", &relayB, nil)

	f := NewFetcher([]string{a.URL + "/raw?url=", b.URL + "/?"})
	text, err := f.Fetch(context.Background(), d.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if text != "relay b" {
		t.Errorf("Fetch() = %q, expected second relay body", text)
	}
	if direct != 1 || relayA != 1 || relayB != 1 {
		t.Errorf("call counts = %d/%d/%d, expected 1/1/1", direct, relayA, relayB)
	}
}

func TestFetch_AllFail(t *testing.T) {
	var direct, relayA, relayB int32
	d := countingServer(t, http.StatusNotFound, "", &direct, nil)
	a := countingServer(t, http.StatusOK, "", &relayA, nil)
	b := countingServer(t, http.StatusBadGateway, "bad", &relayB, nil)

	target := d.URL + "/missing.xml"
	f := NewFetcher([]string{a.URL + "/raw?url=", b.URL + "/?"})

	_, err := f.Fetch(context.Background(), target)
	if err == nil {
		t.Fatal("expected error when every source fails")
	}
	if !errors.Is(err, util.ErrFeedUnavailable) {
		t.Errorf("error %v should match ErrFeedUnavailable", err)
	}

	var fe *FeedUnavailableError
	if !errors.As(err, &fe) {
		t.Fatalf("error should be a FeedUnavailableError, got %T", err)
	}
	if fe.URL != target {
		t.Errorf("URL = %q, expected %q", fe.URL, target)
	}
	if err.Error() != "unable to load RSS feed from "+target {
		t.Errorf("message = %q", err.Error())
	}
	if direct != 1 || relayA != 1 || relayB != 1 {
		t.Errorf("each source should be tried exactly once, got %d/%d/%d", direct, relayA, relayB)
	}
}

func TestFetch_NetworkErrorIsSwallowed(t *testing.T) {
	var relayA int32
	a := countingServer(t, http.StatusOK, "<rss/>", &relayA, nil)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	f := NewFetcher([]string{a.URL + "/raw?url="})
	text, err := f.Fetch(context.Background(), deadURL+"/feed.xml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if text != "<rss/>" || relayA != 1 {
		t.Errorf("expected relay to serve after network error, got %q (%d hits)", text, relayA)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	var direct int32
	d := countingServer(t, http.StatusOK, "<rss/>", &direct, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(nil).Fetch(ctx, d.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error %v should wrap context.Canceled", err)
	}
	if errors.Is(err, util.ErrFeedUnavailable) {
		t.Error("cancellation should not be reported as an unavailable feed")
	}
	if direct != 0 {
		t.Errorf("no request should be issued, got %d", direct)
	}
}

func TestNewFetcher_DefaultRelays(t *testing.T) {
	f := NewFetcher(nil)
	relays := f.Relays()
	if len(relays) != 2 || relays[0] != DefaultRelays[0] || relays[1] != DefaultRelays[1] {
		t.Errorf("Relays() = %v, expected defaults", relays)
	}
}
