package repository

import (
	"context"

	"github.com/user/seo-audit-service/internal/entity"
)

// Fetcher performs a single bounded HTTP GET. A non-2xx response is not an
// error: the page is returned with its status code and the caller decides.
// An error means the request itself failed (DNS, connect, timeout).
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*entity.Page, error)
}
