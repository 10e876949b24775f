package seo

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
	"golang.org/x/net/html"
)

// Deductions per failed check. Missing alt text deducts one point per image,
// capped at missingAltMaxPenalty.
const (
	titlePenalty         = 20
	metaDescPenalty      = 15
	h1Penalty            = 10
	missingAltMaxPenalty = 15
	thinContentPenalty   = 10

	// Pages with fewer words than this are considered thin content.
	minWordCount = 200
)

// Recommendation texts, one per failed check, emitted in check order.
const (
	recTitle    = "Add a descriptive, keyword-rich <title> tag (50-60 chars)"
	recMetaDesc = "Provide a compelling meta description (~155 chars)"
	recH1       = "Include a single clear H1 headline on the page"
	recAltText  = "Add alt text to images for accessibility and SEO"
	recThin     = "Increase on-page copy to at least 200-500 words"
)

var wordPattern = regexp.MustCompile(`\w+`)

// Auditor fetches a page and runs the lightweight on-page SEO checks,
// producing a 0-100 score and a structured report.
type Auditor struct {
	fetcher repository.Fetcher
}

// NewAuditor creates an auditor using the given fetcher.
func NewAuditor(fetcher repository.Fetcher) *Auditor {
	return &Auditor{fetcher: fetcher}
}

// Audit fetches url and analyzes the returned document. A failed fetch
// propagates so the caller can record it on the owning audit task; whatever
// body comes back, regardless of status code, is analyzed.
func (a *Auditor) Audit(ctx context.Context, url string) (int, *entity.Report, error) {
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, nil, err
	}
	return Analyze(page.Body)
}

// Analyze runs the SEO checks over an HTML body. Each check is computed
// independently; the score starts at 100 and deductions are applied per
// failed check, with the result clamped to [0, 100].
func Analyze(body []byte) (int, *entity.Report, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	report := &entity.Report{Recommendations: []string{}}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		report.Title = &title
	}

	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if strings.EqualFold(name, "description") && content != "" {
			report.MetaDescription = &content
			return false
		}
		return true
	})

	report.HasH1 = doc.Find("h1").Length() > 0

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		report.ImageCount++
		if alt, ok := s.Attr("alt"); !ok || alt == "" {
			report.ImagesMissingAlt++
		}
	})

	report.WordCount = countWords(doc)

	score := 100
	if report.Title == nil {
		score -= titlePenalty
		report.Recommendations = append(report.Recommendations, recTitle)
	}
	if report.MetaDescription == nil {
		score -= metaDescPenalty
		report.Recommendations = append(report.Recommendations, recMetaDesc)
	}
	if !report.HasH1 {
		score -= h1Penalty
		report.Recommendations = append(report.Recommendations, recH1)
	}
	if report.ImagesMissingAlt > 0 {
		penalty := report.ImagesMissingAlt
		if penalty > missingAltMaxPenalty {
			penalty = missingAltMaxPenalty
		}
		score -= penalty
		report.Recommendations = append(report.Recommendations, recAltText)
	}
	if report.WordCount < minWordCount {
		score -= thinContentPenalty
		report.Recommendations = append(report.Recommendations, recThin)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, report, nil
}

// countWords counts word-character tokens across the document's text nodes.
// Each text node is tokenized on its own, which is equivalent to joining the
// page text with whitespace before tokenizing.
func countWords(doc *goquery.Document) int {
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			count += len(wordPattern.FindAllString(n.Data, -1))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return count
}
