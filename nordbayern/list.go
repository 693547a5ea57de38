package nordbayern

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
)

// PoliceReportMarker closes every police report the site publishes.
const PoliceReportMarker = "Hier geht es zu allen aktuellen Polizeimeldungen."

// PaywallHost serves the paywalled NN+ articles.
const PaywallHost = "www.nn.de"

// WireServiceMarker appears in the author line of dpa articles.
const WireServiceMarker = "dpa"

// recordFilter drops a parsed article when skip reports true.
type recordFilter struct {
	name string
	skip func(opts nordfeed.Options, record *nordfeed.ArticleRecord) bool
}

// recordFilters run in order after an article was parsed.
var recordFilters = []recordFilter{
	{
		name: "police-report",
		skip: func(opts nordfeed.Options, record *nordfeed.ArticleRecord) bool {
			return !opts.IncludePoliceReports && strings.Contains(record.Content, PoliceReportMarker)
		},
	},
	{
		name: "wire-service",
		skip: func(opts nordfeed.Options, record *nordfeed.ArticleRecord) bool {
			return opts.HideDPA && strings.Contains(record.AuthorName(), WireServiceMarker)
		},
	},
}

// skipURL reports whether an article can be dropped before it is fetched.
func skipURL(opts nordfeed.Options, articleURL *url.URL) bool {
	return opts.HideNNPlus && strings.EqualFold(articleURL.Hostname(), PaywallHost)
}

// ListingURL returns the listing page URL of region.
func (s *Scraper) ListingURL(region nordfeed.Region) string {
	return s.base.JoinPath("region", string(region)).String()
}

// ListArticles scrapes the region's listing page and returns the records of
// every article that passes the filters in opts, in listing order. Any
// failure to fetch or parse an article fails the whole listing.
func (s *Scraper) ListArticles(ctx context.Context, opts nordfeed.Options) ([]nordfeed.ArticleRecord, error) {
	region, err := nordfeed.ParseRegion(string(opts.Region))
	if err != nil {
		return nil, err
	}

	listingURL := s.ListingURL(region)
	doc, err := s.fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	links, err := s.articleLinks(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing %s: %w", listingURL, err)
	}

	records := []nordfeed.ArticleRecord{}
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		articleURL := link.String()
		if seen[articleURL] {
			continue
		}
		seen[articleURL] = true

		if skipURL(opts, link) {
			s.logger.Info("skipped article", "url", articleURL, "filter", "paywall")
			continue
		}

		record, err := s.ParseArticle(ctx, articleURL)
		if err != nil {
			return nil, err
		}

		if name, skip := applyFilters(opts, record); skip {
			s.logger.Info("skipped article", "url", articleURL, "filter", name)
			continue
		}

		records = append(records, *record)
	}

	s.logger.Info("listed region",
		"region", string(region),
		"entries", len(links),
		"accepted", len(records),
	)

	return records, nil
}

// articleLinks returns the absolute URL of every article entry in the
// listing's main container.
func (s *Scraper) articleLinks(doc *goquery.Document) ([]*url.URL, error) {
	container := doc.Find("main").First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: main", nordfeed.ErrMissingContentContainer)
	}

	var links []*url.URL
	var err error
	container.Find("article").EachWithBreak(func(i int, entry *goquery.Selection) bool {
		href, ok := entry.Find("a").First().Attr("href")
		if !ok {
			err = fmt.Errorf("%w: link of entry %d", nordfeed.ErrMissingContentContainer, i)
			return false
		}
		var ref *url.URL
		ref, err = url.Parse(strings.TrimSpace(href))
		if err != nil {
			err = fmt.Errorf("invalid link of entry %d: %w", i, err)
			return false
		}
		links = append(links, s.base.ResolveReference(ref))
		return true
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

func applyFilters(opts nordfeed.Options, record *nordfeed.ArticleRecord) (string, bool) {
	for _, f := range recordFilters {
		if f.skip(opts, record) {
			return f.name, true
		}
	}
	return "", false
}
