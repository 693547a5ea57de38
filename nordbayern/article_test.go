package nordbayern_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
	"github.com/pevans/nordfeed/nordbayern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const richArticle = `<html><body>
<article id="article">
	<header>
		<span class="article__author">Von</span>
		<span class="article__author">  Max Muster </span>
		<h2>Großer <em>Brand</em> in Fürth</h2>
		<p class="article__teaser">Ein  Feuer hat   die Altstadt erreicht.</p>
		<span class="article__release">17.10.2026, 14:52 Uhr</span>
	</header>
	<picture><img src="/img/brand.jpg"></picture>
	<section class="article__richtext">
		<p>Erster Absatz mit <a href="/region/fuerth">Link</a>.</p>
		<h3>Zwischentitel</h3>
		<p>Zweiter Absatz.</p>
	</section>
	<div class="article__infobox"><p>Info</p></div>
	<div class="article__authorinfo"><p>Über den Autor</p></div>
</article>
<div class="themen"><a href="/themen/feuer">Feuer</a><a href="/themen/fuerth"><span>Fürth</span></a></div>
</body></html>`

const simplifiedArticle = `<html><body><main>
	<div class="modul__teaser modul__teaser--big">
		<h3>Kurzmeldung</h3>
		<p>Nur ein Absatz.</p>
		<p>Wird ignoriert.</p>
	</div>
</main></body></html>`

func parseDocument(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

// TestParseArticleDocument_RichLayout verifies every field of a full article
func TestParseArticleDocument_RichLayout(t *testing.T) {
	scraper := nordbayern.New(nil)
	url := "https://www.nordbayern.de/region/fuerth/brand-1.123"

	record, err := scraper.ParseArticleDocument(parseDocument(t, richArticle), url)
	require.NoError(t, err)

	assert.Equal(t, url, record.URI)
	assert.Equal(t, "Großer <em>Brand</em> in Fürth", record.Title)

	require.NotNil(t, record.Author)
	assert.Equal(t, "Max Muster", *record.Author)

	require.NotNil(t, record.Timestamp)
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 17, 14, 52, 0, 0, berlin).Equal(*record.Timestamp))

	assert.Equal(t, []string{"Feuer", "<span>Fürth</span>"}, record.Categories)

	expected := `<p class="article__teaser">Ein Feuer hat die Altstadt erreicht.</p>` +
		`<br><img src="https://www.nordbayern.de/img/brand.jpg">` +
		`<p>Erster Absatz mit <a href="https://www.nordbayern.de/region/fuerth">Link</a>.</p>` +
		`<h3>Zwischentitel</h3>` +
		`<p>Zweiter Absatz.</p>`
	assert.Equal(t, expected, record.Content)
}

// TestParseArticleDocument_TeaserNotDuplicated verifies the teaser appears
// exactly once, at the start of the body
func TestParseArticleDocument_TeaserNotDuplicated(t *testing.T) {
	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, richArticle), "https://www.nordbayern.de/a")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(record.Content, `<p class="article__teaser">`))
	assert.Equal(t, 1, strings.Count(record.Content, "article__teaser"))
}

// TestParseArticleDocument_SimplifiedLayout verifies the teaser module
// paragraph becomes the whole body
func TestParseArticleDocument_SimplifiedLayout(t *testing.T) {
	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, simplifiedArticle), "https://www.nordbayern.de/b")
	require.NoError(t, err)

	assert.Equal(t, "Kurzmeldung", record.Title)
	assert.Equal(t, "<p>Nur ein Absatz.</p>", record.Content)
	assert.Nil(t, record.Author, "author should be absent")
	assert.Nil(t, record.Timestamp, "timestamp should be absent")
	assert.Nil(t, record.Categories, "categories should be absent")
}

// TestParseArticleDocument_SimplifiedLayoutWithoutParagraph verifies an empty
// teaser module yields an empty body rather than an error
func TestParseArticleDocument_SimplifiedLayoutWithoutParagraph(t *testing.T) {
	page := `<html><body><div class="modul__teaser"><h2>Nur Titel</h2></div></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/c")
	require.NoError(t, err)

	assert.Equal(t, "", record.Content)
}

// TestParseArticleDocument_PrefersH2 verifies h2 wins over an earlier h3
func TestParseArticleDocument_PrefersH2(t *testing.T) {
	page := `<html><body><h3>Kicker</h3><h2>Headline</h2><div class="modul__teaser"><p>x</p></div></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/d")
	require.NoError(t, err)

	assert.Equal(t, "Headline", record.Title)
}

// TestParseArticleDocument_MissingTitle verifies a page without headings fails
func TestParseArticleDocument_MissingTitle(t *testing.T) {
	page := `<html><body><article><section class="article__richtext"><p>x</p></section></article></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/e")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, nordfeed.ErrMissingTitleElement)
}

// TestParseArticleDocument_MissingTeaserModule verifies a page with neither
// layout fails as a structural mismatch
func TestParseArticleDocument_MissingTeaserModule(t *testing.T) {
	page := `<html><body><h2>Titel</h2><p>Text</p></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/f")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, nordfeed.ErrMissingContentContainer)
}

// TestParseArticleDocument_EmptyTopics verifies a topics container without
// links yields an empty, present category list
func TestParseArticleDocument_EmptyTopics(t *testing.T) {
	page := `<html><body><h2>T</h2><div class="modul__teaser"><p>x</p></div><div class="themen"></div></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/g")
	require.NoError(t, err)

	require.NotNil(t, record.Categories)
	assert.Empty(t, record.Categories)
}

// TestParseArticleDocument_UnrenderableTopic verifies a topic link that
// cannot be rendered fails the article instead of being dropped
func TestParseArticleDocument_UnrenderableTopic(t *testing.T) {
	page := `<html><body><h2>T</h2><div class="modul__teaser"><p>x</p></div>` +
		`<div class="themen"><a href="/a">Feuer</a><a href="/b">Wasser<br></a></div></body></html>`
	doc := parseDocument(t, page)
	// A void element with children can't be rendered back to HTML.
	br := doc.Find(`[class="themen"] br`).Get(0)
	br.AppendChild(&html.Node{Type: html.TextNode, Data: "x"})

	record, err := nordbayern.New(nil).ParseArticleDocument(doc, "https://www.nordbayern.de/t")

	assert.Nil(t, record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic 1")
}

// TestParseArticleDocument_UnparseableRelease verifies an unknown date format
// leaves the timestamp absent
func TestParseArticleDocument_UnparseableRelease(t *testing.T) {
	page := `<html><body><h2>T</h2><span class="article__release">gestern Uhr</span><div class="modul__teaser"><p>x</p></div></body></html>`

	record, err := nordbayern.New(nil).ParseArticleDocument(parseDocument(t, page), "https://www.nordbayern.de/h")
	require.NoError(t, err)

	assert.Nil(t, record.Timestamp)
}

func TestParseRelease(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		text     string
		expected time.Time
		ok       bool
	}{
		{"17.10.2026, 14:52 Uhr", time.Date(2026, 10, 17, 14, 52, 0, 0, berlin), true},
		{" 17.10.2026  14:52 Uhr ", time.Date(2026, 10, 17, 14, 52, 0, 0, berlin), true},
		{"7.1.2026, 08:05 Uhr", time.Date(2026, 1, 7, 8, 5, 0, 0, berlin), true},
		{"01.02.2026", time.Date(2026, 2, 1, 0, 0, 0, 0, berlin), true},
		{"vor 5 Minuten", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			parsed, ok := nordbayern.ParseRelease(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(parsed), "got %s", parsed)
			}
		})
	}
}
