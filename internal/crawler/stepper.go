package crawler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
	"github.com/user/seo-audit-service/pkg/metrics"
	"github.com/user/seo-audit-service/pkg/urlutil"
)

// visitOutcome is the explicit result of visiting one frontier entry.
// Per-page failures are a skip, never an error: the crawl policy is that
// a page that can't be fetched simply contributed no links.
type visitOutcome int

const (
	visitFetched visitOutcome = iota
	visitSkipped
)

// Stepper advances a crawl task by one bounded unit of work. It is stateless
// between invocations: all crawl state lives on the task document.
type Stepper struct {
	fetcher    repository.Fetcher
	stepBudget int
	maxURLs    int
}

// NewStepper creates a stepper that visits at most stepBudget frontier
// entries per call and never records more than maxURLs discovered URLs.
func NewStepper(fetcher repository.Fetcher, stepBudget, maxURLs int) *Stepper {
	return &Stepper{
		fetcher:    fetcher,
		stepBudget: stepBudget,
		maxURLs:    maxURLs,
	}
}

// Step performs one crawl increment and mutates task in place.
//
// The frontier is seeded with the seed URL only when nothing has been
// discovered yet; on later calls only links found within this same call are
// expanded further. Discovered-but-unexpanded URLs from earlier polls are
// not revisited — a deliberate shallow-crawl policy, not an oversight.
func (s *Stepper) Step(ctx context.Context, task *entity.CrawlTask) {
	urls := task.URLs
	if len(urls) > s.maxURLs {
		urls = urls[:s.maxURLs]
	}
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		seen[u] = struct{}{}
	}

	var frontier []string
	if len(urls) == 0 {
		frontier = []string{task.SeedURL}
	}

	steps := 0
	for len(frontier) > 0 && steps < s.stepBudget && len(urls) < s.maxURLs {
		current := frontier[0]
		frontier = frontier[1:]

		outcome, links := s.visit(ctx, current)
		if outcome == visitFetched {
			for _, link := range links {
				if len(urls) >= s.maxURLs {
					break
				}
				if !urlutil.SameOrigin(task.SeedURL, link) {
					continue
				}
				if _, dup := seen[link]; dup {
					continue
				}
				seen[link] = struct{}{}
				urls = append(urls, link)
				frontier = append(frontier, link)
			}
		}
		steps++
	}

	metrics.CrawlStepsTotal.Inc()

	task.URLs = urls
	task.TotalFound = len(urls)
	// Progress is a simple proxy: one point per discovered URL, capped at
	// 100. It is not a fraction of remaining work.
	progress := len(urls)
	if progress > 100 {
		progress = 100
	}
	task.Progress = progress
	if progress >= 100 {
		task.Status = entity.StatusComplete
	} else {
		task.Status = entity.StatusInProgress
	}
	task.UpdatedAt = time.Now().UTC()
}

// visit fetches one frontier entry and extracts its links. Fetch failures
// and non-200 responses both count against the step budget but yield no
// links and are not surfaced on the task.
func (s *Stepper) visit(ctx context.Context, url string) (visitOutcome, []string) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Debug("crawl fetch failed, skipping page", "url", url, "error", err)
		return visitSkipped, nil
	}
	if page.StatusCode != http.StatusOK {
		slog.Debug("crawl fetch non-200, skipping extraction", "url", url, "status", page.StatusCode)
		return visitSkipped, nil
	}
	return visitFetched, ExtractLinks(url, page.Body)
}
