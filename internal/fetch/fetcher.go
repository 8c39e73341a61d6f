// Package fetch retrieves HTML pages from the external hadith sites.
// Both sites reject bot-flagged user agents, so requests go out with a
// desktop browser UA. Concurrent requests for the same URL are collapsed
// into a single upstream GET.
package fetch

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rashidk/tahqiq/internal/model"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// Fetcher fetches and entity-decodes HTML content
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *HostLimiter
	robots     *RobotsChecker // nil when robots checking is disabled
	inflight   singleflight.Group
}

// New creates a Fetcher from the HTTP configuration
func New(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}

	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return f
}

// Get fetches the page at rawURL and returns its HTML with entities
// decoded. Transient upstream failures (5xx, 429, connection resets) are
// retried with exponential backoff; other non-2xx statuses fail
// immediately. Concurrent calls for the same URL share one request.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (string, error) {
	v, err, _ := f.inflight.Do(rawURL, func() (any, error) {
		return f.getWithRetry(ctx, rawURL)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (f *Fetcher) getWithRetry(ctx context.Context, rawURL string) (string, error) {
	var body string
	var err error

	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		body, err = f.getOnce(ctx, rawURL)
		if err == nil || !isRetryableFetchError(err) {
			return body, err
		}
		if attempt < fetchMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			fetchSleepFunc(backoff)
		}
	}

	return "", err
}

func (f *Fetcher) getOnce(ctx context.Context, rawURL string) (string, error) {
	if f.robots != nil {
		allowed, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ar,en-US;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return html.UnescapeString(string(body)), nil
}

// isRetryableFetchError returns true for errors that indicate transient failures
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "unexpected status: 5") {
		return true
	}
	if strings.Contains(s, "unexpected status: 429") {
		return true
	}
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
