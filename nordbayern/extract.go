package nordbayern

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/nordfeed"
)

// Class markers used by the article markup.
const (
	classTeaser   = "article__teaser"
	classInfobox  = "article__infobox"
	classAuthor   = "authorinfo"
	classRichText = "article__richtext"
	classContext  = "article__context"
)

// logoPattern matches publisher logos that are embedded as pictures.
var logoPattern = regexp.MustCompile(`/logo-.*\.png`)

// rule decides what a single child element contributes to the body.
type rule struct {
	name  string
	match func(node *goquery.Selection) bool
	emit  func(node *goquery.Selection) (string, error)
}

// rules is evaluated in order; the first match wins and unmatched children
// are dropped. Assigned in init because the recursive rules refer back to
// ExtractContent.
var rules []rule

func init() {
	rules = []rule{
		{
			name: "paragraph",
			match: func(node *goquery.Selection) bool {
				tag := goquery.NodeName(node)
				return (tag == "p" || tag == "h3") && !node.HasClass(classTeaser)
			},
			emit: verbatim,
		},
		{
			name:  "main",
			match: isTag("main"),
			emit: func(node *goquery.Selection) (string, error) {
				article := node.Find("article").First()
				if article.Length() == 0 {
					return "", fmt.Errorf("%w: main without article", nordfeed.ErrMissingContentContainer)
				}
				return ExtractContent(article)
			},
		},
		{
			name:  "header",
			match: isTag("header"),
			emit:  ExtractContent,
		},
		{
			name: "container",
			match: func(node *goquery.Selection) bool {
				if goquery.NodeName(node) != "div" {
					return false
				}
				class := node.AttrOr("class", "")
				return !strings.Contains(class, classInfobox) && !strings.Contains(class, classAuthor)
			},
			emit: ExtractContent,
		},
		{
			name: "section",
			match: func(node *goquery.Selection) bool {
				if goquery.NodeName(node) != "section" {
					return false
				}
				class := node.AttrOr("class", "")
				return strings.Contains(class, classRichText) || strings.Contains(class, classContext)
			},
			emit: ExtractContent,
		},
		{
			name:  "picture",
			match: isTag("picture"),
			emit: func(node *goquery.Selection) (string, error) {
				return pictureImage(node), nil
			},
		},
		{
			name:  "list",
			match: isTag("ul"),
			emit:  verbatim,
		},
	}
}

// ExtractContent walks the direct children of node and rebuilds the article
// body from the ones worth keeping, in document order.
func ExtractContent(node *goquery.Selection) (string, error) {
	var b strings.Builder
	var err error
	node.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		for _, r := range rules {
			if !r.match(child) {
				continue
			}
			var fragment string
			fragment, err = r.emit(child)
			if err != nil {
				err = fmt.Errorf("%s rule: %w", r.name, err)
				return false
			}
			b.WriteString(fragment)
			break
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// pictureImage returns a line break and image tag for the picture's image,
// or nothing when the picture is a logo or has no usable image.
func pictureImage(picture *goquery.Selection) string {
	img := picture.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	src := img.AttrOr("src", "")
	if src == "" || logoPattern.MatchString(src) {
		return ""
	}
	return `<br><img src="` + html.EscapeString(src) + `">`
}

func verbatim(node *goquery.Selection) (string, error) {
	return goquery.OuterHtml(node)
}

func isTag(tag string) func(*goquery.Selection) bool {
	return func(node *goquery.Selection) bool {
		return goquery.NodeName(node) == tag
	}
}
