package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seo-audit-service/internal/adapter/memory"
	"github.com/user/seo-audit-service/internal/crawler"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

const seed = "http://site.test/"

type fakeFetcher struct {
	pages map[string]*entity.Page
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*entity.Page, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return nil, errors.New("no route to host")
}

func sitePage(url string, links ...string) *entity.Page {
	var b strings.Builder
	b.WriteString("<body>")
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">x</a>`, l)
	}
	b.WriteString("</body>")
	return &entity.Page{URL: url, StatusCode: http.StatusOK, Body: []byte(b.String())}
}

func newCrawlManager(f repository.Fetcher) (CrawlManager, *memory.CrawlStore) {
	store := memory.NewCrawlStore()
	stepper := crawler.NewStepper(f, 2, 100)
	return NewCrawlManager(store, stepper), store
}

func TestCrawlManagerStart(t *testing.T) {
	t.Run("creates a pending task and returns its id", func(t *testing.T) {
		uc, store := newCrawlManager(&fakeFetcher{})

		id, err := uc.Start(context.Background(), seed)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		task, err := store.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, task.Status)
		assert.Equal(t, seed, task.SeedURL)
		assert.Empty(t, task.URLs)
	})

	t.Run("rejects an empty URL", func(t *testing.T) {
		uc, _ := newCrawlManager(&fakeFetcher{})

		_, err := uc.Start(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyURL)
	})
}

func TestCrawlManagerStatus(t *testing.T) {
	t.Run("performs one step and persists the result", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed: sitePage(seed, "/a", "/b"),
		}}
		uc, store := newCrawlManager(f)

		id, err := uc.Start(context.Background(), seed)
		require.NoError(t, err)

		task, err := uc.Status(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 2, task.TotalFound)
		assert.Equal(t, entity.StatusInProgress, task.Status)

		stored, err := store.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, task.URLs, stored.URLs)
	})

	t.Run("returns ErrNotFound for unknown ids", func(t *testing.T) {
		uc, _ := newCrawlManager(&fakeFetcher{})

		_, err := uc.Status(context.Background(), "b5d0c6a2-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("normalizes quoted ids at the boundary", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{seed: sitePage(seed)}}
		uc, _ := newCrawlManager(f)

		id, err := uc.Start(context.Background(), seed)
		require.NoError(t, err)

		task, err := uc.Status(context.Background(), `"`+id+`"`)
		require.NoError(t, err)
		assert.Equal(t, id, task.ID)
	})
}

func TestCrawlManagerURLs(t *testing.T) {
	f := &fakeFetcher{pages: map[string]*entity.Page{
		seed: sitePage(seed, "/a", "/b", "/c"),
	}}
	uc, _ := newCrawlManager(f)

	id, err := uc.Start(context.Background(), seed)
	require.NoError(t, err)

	urls, err := uc.URLs(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://site.test/a",
		"http://site.test/b",
		"http://site.test/c",
	}, urls)
}
