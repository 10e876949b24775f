package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/pkg/metrics"
)

// maxBodySize bounds how much of a response body is read. Pages larger than
// this are truncated rather than rejected.
const maxBodySize = 2 << 20 // 2 MiB

// HTTPFetcher performs single bounded GET requests with an identifying
// user agent. One instance is shared per phase (crawl, audit) so each phase
// carries its own timeout.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	phase     string
}

// NewHTTPFetcher creates a fetcher whose requests are bounded by timeout.
// phase labels the fetch metrics ("crawl" or "audit").
func NewHTTPFetcher(timeout time.Duration, userAgent, phase string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		phase:     phase,
	}
}

// Fetch GETs rawURL and returns the response status and body. Transport
// failures return an error; non-2xx responses do not.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*entity.Page, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.PagesFetchedTotal.WithLabelValues(f.phase, "transport_error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.PagesFetchedTotal.WithLabelValues(f.phase, "read_error").Inc()
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	metrics.PagesFetchedTotal.WithLabelValues(f.phase, "ok").Inc()
	metrics.FetchDuration.WithLabelValues(f.phase).Observe(time.Since(start).Seconds())

	return &entity.Page{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
