package newsfeed

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/pevans/nordfeed"
)

// SummaryLength is the maximum number of characters kept in a summary.
const SummaryLength = 500

// NewsItem is an article as stored in the feed and rendered to readers.
type NewsItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	URL          string    `json:"url"`
	Publisher    *string   `json:"publisher,omitempty"`
	Authors      []string  `json:"authors"`
	Categories   []string  `json:"categories,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// ItemID returns the stable ID of the article at url. The same article
// always maps to the same ID, so re-syncing a region overwrites instead of
// duplicating.
func ItemID(url string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url))
}

// FromRecord converts a scraped record to a NewsItem discovered at
// discoveredAt.
func FromRecord(record nordfeed.ArticleRecord, discoveredAt time.Time) NewsItem {
	publisher := nordfeed.FeedTitle

	// Authors: the site names at most one author line
	authors := []string{}
	if name := record.AuthorName(); name != "" {
		authors = append(authors, name)
	}

	// Published_at: fall back to discovery time when the page had no date
	publishedAt := discoveredAt
	if record.Timestamp != nil {
		publishedAt = *record.Timestamp
	}

	var categories []string
	for _, c := range record.Categories {
		if label := PlainText(c); label != "" {
			categories = append(categories, label)
		}
	}

	return NewsItem{
		ID:           ItemID(record.URI),
		Title:        PlainText(record.Title),
		Summary:      truncate(PlainText(record.Content), SummaryLength),
		Content:      record.Content,
		URL:          record.URI,
		Publisher:    &publisher,
		Authors:      authors,
		Categories:   categories,
		PublishedAt:  publishedAt,
		DiscoveredAt: discoveredAt,
	}
}

// FromRecords converts records in order.
func FromRecords(records []nordfeed.ArticleRecord, discoveredAt time.Time) []NewsItem {
	items := make([]NewsItem, 0, len(records))
	for _, r := range records {
		items = append(items, FromRecord(r, discoveredAt))
	}
	return items
}

// PlainText returns the text of an HTML fragment with whitespace collapsed.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
