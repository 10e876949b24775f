package repository

import (
	"context"

	"github.com/user/seo-audit-service/internal/entity"
)

// CrawlTaskRepository is the document-store contract for crawl tasks.
// Implementations generate the opaque task id on Create.
type CrawlTaskRepository interface {
	// Create stores a new task document and returns its generated id.
	Create(ctx context.Context, task *entity.CrawlTask) (string, error)
	// FindByID retrieves a task document. Returns ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*entity.CrawlTask, error)
	// Update overwrites the stored document for task.ID.
	Update(ctx context.Context, task *entity.CrawlTask) error
}
