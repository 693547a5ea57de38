package nordbayern

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// ResolveLinks rewrites every relative href and src in doc to an absolute
// URL against base. Values that do not parse are left untouched.
func ResolveLinks(doc *goquery.Document, base *url.URL) {
	for _, attr := range []string{"href", "src"} {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			value, _ := s.Attr(attr)
			ref, err := url.Parse(value)
			if err != nil || ref.IsAbs() {
				return
			}
			s.SetAttr(attr, base.ResolveReference(ref).String())
		})
	}
}
