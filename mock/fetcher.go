package mock

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
)

var _ nordfeed.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of nordfeed.Fetcher that records the URLs
// it was asked for.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*goquery.Document, error)

	mu    sync.Mutex
	calls []string
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	return f.FetchFn(ctx, url)
}

// Calls returns the fetched URLs in order.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
