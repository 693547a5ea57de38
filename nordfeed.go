// Package nordfeed turns the regional listing pages of nordbayern.de into a
// feed of article records. The scraping rules live in package nordbayern;
// this package holds the types shared by every layer.
package nordfeed

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SiteURL is the base every relative link on the site resolves against.
const SiteURL = "https://www.nordbayern.de"

// Feed-level metadata for everything built from the site.
const (
	FeedTitle       = "Nordbayern"
	FeedDescription = "Bridge for Bavarian regional news site nordbayern.de"
	CacheTimeout    = time.Hour
)

// ArticleRecord is a single article scraped from an article page.
type ArticleRecord struct {
	URI       string     `json:"uri"`
	Author    *string    `json:"author,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`

	// Categories is nil when the page has no topics container.
	Categories []string `json:"categories,omitempty"`
}

// HasAuthor returns true if the page carried an author element.
func (r *ArticleRecord) HasAuthor() bool {
	return r.Author != nil
}

// AuthorName returns the author or an empty string when absent.
func (r *ArticleRecord) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return *r.Author
}

// Options controls which region is listed and which articles are dropped.
type Options struct {
	Region               Region `json:"region" yaml:"region"`
	IncludePoliceReports bool   `json:"police_reports" yaml:"police_reports"`
	HideNNPlus           bool   `json:"hide_nn_plus" yaml:"hide_nn_plus"`
	HideDPA              bool   `json:"hide_dpa" yaml:"hide_dpa"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Region:               RegionNuernberg,
		IncludePoliceReports: true,
	}
}

// Fetcher loads a page and returns its parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
