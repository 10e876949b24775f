package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

// CrawlStore is an in-memory CrawlTaskRepository. It backs the service in
// dev mode and substitutes the document store in tests.
type CrawlStore struct {
	mu    sync.Mutex
	tasks map[string]*entity.CrawlTask
}

// NewCrawlStore creates an empty in-memory crawl task store.
func NewCrawlStore() *CrawlStore {
	return &CrawlStore{tasks: make(map[string]*entity.CrawlTask)}
}

func (s *CrawlStore) Create(ctx context.Context, task *entity.CrawlTask) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.New().String()
	s.tasks[task.ID] = cloneCrawl(task)
	return task.ID, nil
}

func (s *CrawlStore) FindByID(ctx context.Context, id string) (*entity.CrawlTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCrawl(task), nil
}

func (s *CrawlStore) Update(ctx context.Context, task *entity.CrawlTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tasks[task.ID] = cloneCrawl(task)
	return nil
}

// cloneCrawl copies a task so callers never alias stored documents.
func cloneCrawl(task *entity.CrawlTask) *entity.CrawlTask {
	c := *task
	c.URLs = append([]string(nil), task.URLs...)
	return &c
}
