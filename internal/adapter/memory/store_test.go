package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

func TestCrawlStore(t *testing.T) {
	ctx := context.Background()
	store := NewCrawlStore()

	t.Run("create assigns an id and round-trips the document", func(t *testing.T) {
		id, err := store.Create(ctx, entity.NewCrawlTask("http://site.test/"))
		require.NoError(t, err)
		require.NotEmpty(t, id)

		task, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "http://site.test/", task.SeedURL)
		assert.Equal(t, entity.StatusPending, task.Status)
	})

	t.Run("documents are not aliased between callers", func(t *testing.T) {
		id, err := store.Create(ctx, entity.NewCrawlTask("http://site.test/"))
		require.NoError(t, err)

		task, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		task.URLs = append(task.URLs, "http://site.test/mutated")

		again, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, again.URLs)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		_, err := store.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		err = store.Update(ctx, &entity.CrawlTask{ID: "missing"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAuditStoreOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewAuditStore()

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, entity.NewAuditTask("crawl-1", fmt.Sprintf("http://site.test/p/%d", i)))
		require.NoError(t, err)
	}

	tasks, err := store.FindByCrawlID(ctx, "crawl-1")
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	for i, task := range tasks {
		assert.Equal(t, fmt.Sprintf("http://site.test/p/%d", i), task.URL)
	}

	other, err := store.FindByCrawlID(ctx, "crawl-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
