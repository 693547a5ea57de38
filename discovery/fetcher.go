// Package discovery loads pages over HTTP for the scraper.
package discovery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
	"golang.org/x/time/rate"
)

// Defaults for the HTTP fetcher.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "nordfeed/1.0 (regional news feed)"

	// DefaultRate is the number of requests per second sent to the site.
	DefaultRate = 2.0
)

var _ nordfeed.Fetcher = (*Fetcher)(nil)

// Fetcher fetches pages with net/http and parses them with goquery.
// Requests are paced by a token bucket so a listing run with many articles
// does not hammer the site.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRate limits requests to rps per second. Zero or less disables pacing.
func WithRate(rps float64) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHTTPClient replaces the underlying client. The timeout option is
// ignored when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}
	return f
}

// Fetch fetches url and parses the response body as HTML. Every failure is
// wrapped in nordfeed.ErrFetchFailure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w %s: %w", nordfeed.ErrFetchFailure, url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %s: failed to create request: %w", nordfeed.ErrFetchFailure, url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", nordfeed.ErrFetchFailure, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %s: HTTP error: %d %s", nordfeed.ErrFetchFailure, url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w %s: failed to parse HTML: %w", nordfeed.ErrFetchFailure, url, err)
	}

	return doc, nil
}
