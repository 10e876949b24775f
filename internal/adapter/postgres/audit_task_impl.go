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

// AuditTaskRepoImpl provides a concrete implementation for the
// AuditTaskRepository interface using PostgreSQL JSONB documents.
type AuditTaskRepoImpl struct {
	db *pgxpool.Pool
}

// NewAuditTaskRepo creates a new instance of AuditTaskRepoImpl.
func NewAuditTaskRepo(db *pgxpool.Pool) *AuditTaskRepoImpl {
	return &AuditTaskRepoImpl{db: db}
}

func (r *AuditTaskRepoImpl) Create(ctx context.Context, task *entity.AuditTask) (string, error) {
	task.ID = uuid.New().String()
	doc, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit task: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO audit_tasks (id, crawl_id, doc) VALUES ($1, $2, $3)`,
		task.ID, task.CrawlID, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert audit task: %w", err)
	}
	return task.ID, nil
}

func (r *AuditTaskRepoImpl) FindByID(ctx context.Context, id string) (*entity.AuditTask, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM audit_tasks WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query audit task %s: %w", id, err)
	}

	return unmarshalAudit(id, doc)
}

// FindByCrawlID returns all audit tasks for a crawl in insertion order.
func (r *AuditTaskRepoImpl) FindByCrawlID(ctx context.Context, crawlID string) ([]*entity.AuditTask, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, doc FROM audit_tasks WHERE crawl_id = $1 ORDER BY seq`, crawlID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit tasks for crawl %s: %w", crawlID, err)
	}
	defer rows.Close()

	var tasks []*entity.AuditTask
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan audit task row: %w", err)
		}
		task, err := unmarshalAudit(id, doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *AuditTaskRepoImpl) Update(ctx context.Context, task *entity.AuditTask) error {
	doc, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal audit task: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE audit_tasks SET doc = $2 WHERE id = $1`, task.ID, doc)
	if err != nil {
		return fmt.Errorf("failed to update audit task %s: %w", task.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func unmarshalAudit(id string, doc []byte) (*entity.AuditTask, error) {
	var task entity.AuditTask
	if err := json.Unmarshal(doc, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit task %s: %w", id, err)
	}
	task.ID = id
	return &task, nil
}
