package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

// AuditStore is an in-memory AuditTaskRepository. FindByCrawlID returns
// tasks in insertion order, which is the store's natural order.
type AuditStore struct {
	mu      sync.Mutex
	tasks   map[string]*entity.AuditTask
	byCrawl map[string][]string // crawl id -> audit ids, insertion order
}

// NewAuditStore creates an empty in-memory audit task store.
func NewAuditStore() *AuditStore {
	return &AuditStore{
		tasks:   make(map[string]*entity.AuditTask),
		byCrawl: make(map[string][]string),
	}
}

func (s *AuditStore) Create(ctx context.Context, task *entity.AuditTask) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.New().String()
	s.tasks[task.ID] = cloneAudit(task)
	s.byCrawl[task.CrawlID] = append(s.byCrawl[task.CrawlID], task.ID)
	return task.ID, nil
}

func (s *AuditStore) FindByID(ctx context.Context, id string) (*entity.AuditTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneAudit(task), nil
}

func (s *AuditStore) FindByCrawlID(ctx context.Context, crawlID string) ([]*entity.AuditTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.byCrawl[crawlID]
	tasks := make([]*entity.AuditTask, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, cloneAudit(s.tasks[id]))
	}
	return tasks, nil
}

func (s *AuditStore) Update(ctx context.Context, task *entity.AuditTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tasks[task.ID] = cloneAudit(task)
	return nil
}

// cloneAudit copies a task so callers never alias stored documents. The
// report is copied as a value; terminal reports are never mutated.
func cloneAudit(task *entity.AuditTask) *entity.AuditTask {
	c := *task
	if task.Score != nil {
		score := *task.Score
		c.Score = &score
	}
	if task.Report != nil {
		report := *task.Report
		report.Recommendations = append([]string(nil), task.Report.Recommendations...)
		c.Report = &report
	}
	return &c
}
