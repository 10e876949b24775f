package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

// CrawlTaskRepoImpl provides a concrete implementation for the
// CrawlTaskRepository interface using PostgreSQL JSONB documents.
type CrawlTaskRepoImpl struct {
	db *pgxpool.Pool
}

// NewCrawlTaskRepo creates a new instance of CrawlTaskRepoImpl.
func NewCrawlTaskRepo(db *pgxpool.Pool) *CrawlTaskRepoImpl {
	return &CrawlTaskRepoImpl{db: db}
}

// Create stores a new task document under a freshly generated id.
func (r *CrawlTaskRepoImpl) Create(ctx context.Context, task *entity.CrawlTask) (string, error) {
	task.ID = uuid.New().String()
	doc, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal crawl task: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO crawl_tasks (id, doc) VALUES ($1, $2)`, task.ID, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert crawl task: %w", err)
	}
	return task.ID, nil
}

// FindByID retrieves a task document. Malformed ids are reported as not
// found, never as a store failure.
func (r *CrawlTaskRepoImpl) FindByID(ctx context.Context, id string) (*entity.CrawlTask, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM crawl_tasks WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query crawl task %s: %w", id, err)
	}

	var task entity.CrawlTask
	if err := json.Unmarshal(doc, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal crawl task %s: %w", id, err)
	}
	task.ID = id
	return &task, nil
}

// Update overwrites the stored document for task.ID.
func (r *CrawlTaskRepoImpl) Update(ctx context.Context, task *entity.CrawlTask) error {
	doc, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal crawl task: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE crawl_tasks SET doc = $2 WHERE id = $1`, task.ID, doc)
	if err != nil {
		return fmt.Errorf("failed to update crawl task %s: %w", task.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
