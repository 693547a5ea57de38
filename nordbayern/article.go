package nordbayern

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
)

// layout is the shape of an article page, decided once per page.
type layout int

const (
	// layoutRich pages carry a rich-text section with the full body.
	layoutRich layout = iota

	// layoutSimplified pages only have a teaser module paragraph.
	layoutSimplified
)

func (l layout) String() string {
	if l == layoutRich {
		return "rich"
	}
	return "simplified"
}

func detectLayout(doc *goquery.Document) layout {
	if doc.Find("section[class*=" + classRichText + "]").Length() > 0 {
		return layoutRich
	}
	return layoutSimplified
}

// releaseSuffix trails every release date on the site.
const releaseSuffix = "Uhr"

var releaseLayouts = []string{
	"02.01.2006, 15:04",
	"02.01.2006 15:04",
	"2.1.2006, 15:04",
	"2.1.2006 15:04",
	"02.01.2006",
}

var berlin = mustLoadLocation("Europe/Berlin")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ParseRelease parses a release date such as "17.10.2026, 14:52 Uhr" in
// German local time. It returns false when no known layout matches.
func ParseRelease(text string) (time.Time, bool) {
	text = strings.ReplaceAll(text, releaseSuffix, "")
	text = strings.Join(strings.Fields(text), " ")
	for _, l := range releaseLayouts {
		if t, err := time.ParseInLocation(l, text, berlin); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseArticle fetches an article page and assembles its record.
func (s *Scraper) ParseArticle(ctx context.Context, articleURL string) (*nordfeed.ArticleRecord, error) {
	doc, err := s.fetch(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	record, err := s.ParseArticleDocument(doc, articleURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article %s: %w", articleURL, err)
	}
	return record, nil
}

// ParseArticleDocument assembles a record from an already loaded article
// page. Relative links in doc are made absolute as a side effect.
func (s *Scraper) ParseArticleDocument(doc *goquery.Document, articleURL string) (*nordfeed.ArticleRecord, error) {
	ResolveLinks(doc, s.base)

	record := &nordfeed.ArticleRecord{URI: articleURL}

	heading := doc.Find("h2").First()
	if heading.Length() == 0 {
		heading = doc.Find("h3").First()
	}
	if heading.Length() == 0 {
		return nil, nordfeed.ErrMissingTitleElement
	}
	title, err := heading.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render title: %w", err)
	}
	record.Title = title

	if author := doc.Find(".article__author").Eq(1); author.Length() > 0 {
		name := strings.TrimSpace(author.Text())
		record.Author = &name
	}

	if release := doc.Find(`[class="article__release"]`).First(); release.Length() > 0 {
		if t, ok := ParseRelease(release.Text()); ok {
			record.Timestamp = &t
		} else {
			s.logger.Warn("unparseable release date",
				"url", articleURL,
				"text", strings.TrimSpace(release.Text()),
			)
		}
	}

	if topics := doc.Find(`[class="themen"]`).First(); topics.Length() > 0 {
		record.Categories, err = topicLabels(topics)
		if err != nil {
			return nil, err
		}
	}

	kind := detectLayout(doc)
	content, err := articleBody(doc, kind)
	if err != nil {
		return nil, fmt.Errorf("%s layout: %w", kind, err)
	}
	record.Content = content

	return record, nil
}

// topicLabels returns the markup of every topic link, in order. A container
// without links yields an empty, non-nil list.
func topicLabels(topics *goquery.Selection) ([]string, error) {
	labels := []string{}
	var err error
	topics.Find("a").EachWithBreak(func(i int, a *goquery.Selection) bool {
		var label string
		label, err = a.Html()
		if err != nil {
			err = fmt.Errorf("failed to render topic %d: %w", i, err)
			return false
		}
		labels = append(labels, label)
		return true
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func articleBody(doc *goquery.Document, kind layout) (string, error) {
	switch kind {
	case layoutRich:
		article := doc.Find("article").First()
		if article.Length() == 0 {
			return "", fmt.Errorf("%w: article", nordfeed.ErrMissingContentContainer)
		}
		body, err := ExtractContent(article)
		if err != nil {
			return "", err
		}
		// The teaser goes first so readers don't take the caption of the
		// lead image for the summary.
		return SplitTeaser(article) + body, nil
	default:
		module := doc.Find("div[class*=modul__teaser]").First()
		if module.Length() == 0 {
			return "", fmt.Errorf("%w: teaser module", nordfeed.ErrMissingContentContainer)
		}
		p := module.Find("p").First()
		if p.Length() == 0 {
			return "", nil
		}
		return goquery.OuterHtml(p)
	}
}
