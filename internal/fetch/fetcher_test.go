package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

func TestHTTPFetcher(t *testing.T) {
	t.Run("sends the identifying user agent and returns the body", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<title>hello</title>"))
		}))
		defer srv.Close()

		f := NewHTTPFetcher(2*time.Second, "SEO-Audit-Bot/1.0", "crawl")
		page, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, "SEO-Audit-Bot/1.0", gotUA)
		assert.Equal(t, http.StatusOK, page.StatusCode)
		assert.Equal(t, []byte("<title>hello</title>"), page.Body)
	})

	t.Run("non-2xx responses are returned, not errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(2*time.Second, "SEO-Audit-Bot/1.0", "crawl")
		page, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusGone, page.StatusCode)
	})

	t.Run("unreachable hosts return an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // free the port, then dial it

		f := NewHTTPFetcher(2*time.Second, "SEO-Audit-Bot/1.0", "crawl")
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Error(t, err)
	})
}

type memCache struct {
	pages map[string]*entity.Page
	sets  int
}

func (c *memCache) Get(_ context.Context, url string) (*entity.Page, error) {
	return c.pages[url], nil
}

func (c *memCache) Set(_ context.Context, page *entity.Page, _ time.Duration) error {
	c.sets++
	c.pages[page.URL] = page
	return nil
}

type countingFetcher struct {
	page  *entity.Page
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (*entity.Page, error) {
	f.calls++
	p := *f.page
	p.URL = url
	return &p, nil
}

var _ repository.Fetcher = (*CachedFetcher)(nil)

func TestCachedFetcher(t *testing.T) {
	t.Run("second fetch of the same URL is served from the cache", func(t *testing.T) {
		inner := &countingFetcher{page: &entity.Page{StatusCode: http.StatusOK, Body: []byte("x")}}
		cache := &memCache{pages: map[string]*entity.Page{}}
		f := NewCachedFetcher(inner, cache, time.Minute)

		_, err := f.Fetch(context.Background(), "http://site.test/")
		require.NoError(t, err)
		_, err = f.Fetch(context.Background(), "http://site.test/")
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("non-2xx pages are not cached", func(t *testing.T) {
		inner := &countingFetcher{page: &entity.Page{StatusCode: http.StatusNotFound}}
		cache := &memCache{pages: map[string]*entity.Page{}}
		f := NewCachedFetcher(inner, cache, time.Minute)

		_, err := f.Fetch(context.Background(), "http://site.test/")
		require.NoError(t, err)
		_, err = f.Fetch(context.Background(), "http://site.test/")
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
		assert.Equal(t, 0, cache.sets)
	})
}
