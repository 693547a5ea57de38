// Package nordbayern scrapes regional listings and articles from
// nordbayern.de using goquery.
package nordbayern

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
)

// Scraper turns listing and article pages into records. Pages are fetched
// one at a time through the Fetcher.
type Scraper struct {
	fetcher nordfeed.Fetcher
	base    *url.URL
	logger  *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithBaseURL overrides the site URL that listing URLs are built from and
// relative links resolve against.
func WithBaseURL(base *url.URL) Option {
	return func(s *Scraper) {
		s.base = base
	}
}

// New creates a Scraper that loads pages through fetcher.
func New(fetcher nordfeed.Fetcher, opts ...Option) *Scraper {
	base, _ := url.Parse(nordfeed.SiteURL)
	s := &Scraper{
		fetcher: fetcher,
		base:    base,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	begin := time.Now()
	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if errors.Is(err, nordfeed.ErrFetchFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %w", nordfeed.ErrFetchFailure, pageURL, err)
	}
	s.logger.Debug("fetched page",
		"url", pageURL,
		"duration", time.Since(begin),
	)
	return doc, nil
}
