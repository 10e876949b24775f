package crawler

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/seo-audit-service/pkg/urlutil"
)

// ExtractLinks parses an HTML document and returns the href targets of its
// anchors as normalized absolute URLs, in document order. Links that fail
// normalization (non-http schemes, malformed hrefs) are dropped. Cross-origin
// links are still returned; the stepper filters against the seed origin.
func ExtractLinks(baseURL string, body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if normalized, ok := urlutil.Normalize(baseURL, href); ok {
			links = append(links, normalized)
		}
	})
	return links
}
