package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/pkg/urlutil"
)

// PageCacheImpl provides a concrete implementation for the PageCache
// interface using Redis. Pages are stored as JSON under hashed URL keys.
type PageCacheImpl struct {
	client *redis.Client
}

// NewPageCache creates a new instance of PageCacheImpl.
func NewPageCache(client *redis.Client) *PageCacheImpl {
	return &PageCacheImpl{client: client}
}

func cacheKey(url string) string {
	return fmt.Sprintf("page:%s", urlutil.HashURL(url))
}

// Get returns the cached page, or (nil, nil) when the key is absent.
func (c *PageCacheImpl) Get(ctx context.Context, url string) (*entity.Page, error) {
	val, err := c.client.Get(ctx, cacheKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page entity.Page
	if err := json.Unmarshal(val, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page for %s: %w", url, err)
	}
	return &page, nil
}

// Set stores a page with the given expiry.
func (c *PageCacheImpl) Set(ctx context.Context, page *entity.Page, ttl time.Duration) error {
	val, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page for %s: %w", page.URL, err)
	}
	return c.client.Set(ctx, cacheKey(page.URL), val, ttl).Err()
}
