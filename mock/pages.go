package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NewPageFetcher returns a Fetcher serving fixed HTML per URL. Unknown URLs
// fail like a 404 would.
func NewPageFetcher(pages map[string]string) *Fetcher {
	return &Fetcher{
		FetchFn: func(_ context.Context, url string) (*goquery.Document, error) {
			page, ok := pages[url]
			if !ok {
				return nil, fmt.Errorf("HTTP 404 for %s", url)
			}
			return goquery.NewDocumentFromReader(strings.NewReader(page))
		},
	}
}
