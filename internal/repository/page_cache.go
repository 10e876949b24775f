package repository

import (
	"context"
	"time"

	"github.com/user/seo-audit-service/internal/entity"
)

// PageCache is a short-lived cache of fetched pages, keyed by URL. It keeps
// back-to-back audit polls from refetching identical documents.
type PageCache interface {
	// Get returns the cached page, or (nil, nil) on a miss.
	Get(ctx context.Context, url string) (*entity.Page, error)
	// Set stores a page with the given expiry.
	Set(ctx context.Context, page *entity.Page, ttl time.Duration) error
}
