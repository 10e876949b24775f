package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/seo-audit-service/internal/crawler"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
)

var (
	ErrEmptyURL = errors.New("URL is required")
)

// CrawlManager defines the interface for starting and polling crawl tasks.
type CrawlManager interface {
	// Start creates a new pending crawl for seedURL and returns its id.
	Start(ctx context.Context, seedURL string) (string, error)
	// Status performs one crawl stepper increment, persists it best-effort
	// and returns the task. Returns repository.ErrNotFound for unknown ids.
	Status(ctx context.Context, taskID string) (*entity.CrawlTask, error)
	// URLs returns the discovered URLs after one Status increment.
	URLs(ctx context.Context, taskID string) ([]string, error)
}

type crawlManager struct {
	crawlRepo repository.CrawlTaskRepository
	stepper   *crawler.Stepper
}

// NewCrawlManager creates a new CrawlManager use case.
func NewCrawlManager(crawlRepo repository.CrawlTaskRepository, stepper *crawler.Stepper) CrawlManager {
	return &crawlManager{
		crawlRepo: crawlRepo,
		stepper:   stepper,
	}
}

func (uc *crawlManager) Start(ctx context.Context, seedURL string) (string, error) {
	if seedURL == "" {
		return "", ErrEmptyURL
	}

	task := entity.NewCrawlTask(seedURL)
	id, err := uc.crawlRepo.Create(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to create crawl task: %w", err)
	}

	slog.Info("crawl task created", "task_id", id, "seed_url", seedURL)
	return id, nil
}

func (uc *crawlManager) Status(ctx context.Context, taskID string) (*entity.CrawlTask, error) {
	task, err := uc.crawlRepo.FindByID(ctx, repository.NormalizeID(taskID))
	if err != nil {
		return nil, err
	}

	uc.stepper.Step(ctx, task)

	// Best-effort persist: a failed update must not abort an otherwise
	// successful step. The next poll simply redoes comparable work.
	if err := uc.crawlRepo.Update(ctx, task); err != nil {
		slog.Warn("failed to persist crawl step", "task_id", task.ID, "error", err)
	}

	return task, nil
}

func (uc *crawlManager) URLs(ctx context.Context, taskID string) ([]string, error) {
	task, err := uc.Status(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return task.URLs, nil
}
