package repository

import (
	"context"

	"github.com/user/seo-audit-service/internal/entity"
)

// AuditTaskRepository is the document-store contract for audit tasks.
type AuditTaskRepository interface {
	// Create stores a new task document and returns its generated id.
	Create(ctx context.Context, task *entity.AuditTask) (string, error)
	// FindByID retrieves a task document. Returns ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*entity.AuditTask, error)
	// FindByCrawlID retrieves all audit tasks owned by a crawl, in the
	// store's natural (insertion) order.
	FindByCrawlID(ctx context.Context, crawlID string) ([]*entity.AuditTask, error)
	// Update overwrites the stored document for task.ID.
	Update(ctx context.Context, task *entity.AuditTask) error
}
