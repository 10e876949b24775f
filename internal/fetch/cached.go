package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

// CachedFetcher wraps a Fetcher with a short-TTL page cache. Cache failures
// are never fatal: a broken cache degrades to plain fetching.
type CachedFetcher struct {
	next  repository.Fetcher
	cache repository.PageCache
	ttl   time.Duration
}

// NewCachedFetcher wraps next with cache. Successful 2xx fetches are cached
// for ttl.
func NewCachedFetcher(next repository.Fetcher, cache repository.PageCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, ttl: ttl}
}

func (f *CachedFetcher) Fetch(ctx context.Context, rawURL string) (*entity.Page, error) {
	page, err := f.cache.Get(ctx, rawURL)
	if err != nil {
		slog.Warn("page cache lookup failed", "url", rawURL, "error", err)
	} else if page != nil {
		return page, nil
	}

	page, err = f.next.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if page.StatusCode >= 200 && page.StatusCode < 300 {
		if err := f.cache.Set(ctx, page, f.ttl); err != nil {
			slog.Warn("page cache store failed", "url", rawURL, "error", err)
		}
	}
	return page, nil
}
