package nordbayern

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multipleSpaces = regexp.MustCompile(`[ ]{2,}`)

// textEscaper escapes only what would change the markup of element text, so
// quotes come through as plain characters.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// SplitTeaser returns the article's teaser paragraph rebuilt from its plain
// text, or an empty string when the article has none. ExtractContent skips
// the paragraph itself, so callers emit this ahead of the extracted body.
func SplitTeaser(article *goquery.Selection) string {
	teaser := article.Find("p." + classTeaser).First()
	if teaser.Length() == 0 {
		return ""
	}
	text := multipleSpaces.ReplaceAllString(teaser.Text(), " ")
	return `<p class="` + classTeaser + `">` + textEscaper.Replace(text) + `</p>`
}
