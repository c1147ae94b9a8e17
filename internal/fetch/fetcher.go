package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/franz/carolcast/internal/util"
)

// UserAgent identifies this application to feed hosts and relays
const UserAgent = "carolcast/1.0 (https://github.com/franz/carolcast)"

// DefaultRelays are the fallback relay base URLs, tried in order after the
// direct request. The escaped target URL is appended to each.
var DefaultRelays = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?",
}

// FeedUnavailableError reports that the direct request and every relay failed
type FeedUnavailableError struct {
	URL string
}

func (e *FeedUnavailableError) Error() string {
	return fmt.Sprintf("unable to load RSS feed from %s", e.URL)
}

// Is makes errors.Is(err, util.ErrFeedUnavailable) hold
func (e *FeedUnavailableError) Is(target error) bool {
	return target == util.ErrFeedUnavailable
}

// Fetcher loads feed documents, falling back to relays when the direct
// request fails or comes back empty
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	relays     []string
}

// NewFetcher creates a fetcher using the given relay base URLs (DefaultRelays
// when empty). No request timeout is set; callers bound a fetch through ctx.
func NewFetcher(relays []string) *Fetcher {
	if len(relays) == 0 {
		relays = DefaultRelays
	}
	return &Fetcher{
		httpClient: &http.Client{},
		userAgent:  UserAgent,
		relays:     append([]string(nil), relays...),
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (f *Fetcher) WithHTTPClient(c *http.Client) *Fetcher {
	f.httpClient = c
	return f
}

// Relays returns the configured relay base URLs
func (f *Fetcher) Relays() []string {
	return append([]string(nil), f.relays...)
}

// Fetch returns the body of target from the first source that answers with a
// 2xx status and a non-blank body: the direct URL, then each relay in order.
// Every source is tried at most once.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	attempts := make([]util.Attempt[string], 0, len(f.relays)+1)
	attempts = append(attempts, util.Attempt[string]{
		Name: "direct",
		Run:  func(ctx context.Context) (string, error) { return f.get(ctx, target) },
	})
	for i, base := range f.relays {
		relayURL := base + url.QueryEscape(target)
		attempts = append(attempts, util.Attempt[string]{
			Name: fmt.Sprintf("relay %d (%s)", i+1, hostOf(base)),
			Run:  func(ctx context.Context) (string, error) { return f.get(ctx, relayURL) },
		})
	}

	text, err := util.FirstSuccess(ctx, attempts, "fetch "+target)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		util.ErrorLog("Unable to load feed %s: %v", target, err)
		return "", &FeedUnavailableError{URL: target}
	}
	return text, nil
}

// get performs one GET. Non-2xx statuses and blank bodies are rejections.
func (f *Fetcher) get(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status code %d", util.ErrRejected, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response body", util.ErrRejected)
	}
	return text, nil
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}
