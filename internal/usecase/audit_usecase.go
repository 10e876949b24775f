package usecase

import (
	"context"
	"log/slog"

	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
	"github.com/user/seo-audit-service/internal/seo"
	"github.com/user/seo-audit-service/pkg/metrics"
)

// maxErrorLen bounds the error message recorded on a failed audit task.
const maxErrorLen = 120

// AuditManager defines the interface for the audit phase of a crawl.
type AuditManager interface {
	// Start materializes pending audit tasks for the first discovered URLs
	// of the crawl (advancing the crawl by one step on the way) and returns
	// the created task ids with their count.
	Start(ctx context.Context, crawlID string) ([]string, int, error)
	// List advances one batch of pending audit tasks, then returns the
	// refreshed full task list for the crawl.
	List(ctx context.Context, crawlID string) ([]*entity.AuditTask, error)
	// Report returns a single audit task document. Returns
	// repository.ErrNotFound for unknown ids.
	Report(ctx context.Context, auditID string) (*entity.AuditTask, error)
}

type auditManager struct {
	auditRepo repository.AuditTaskRepository
	crawls    CrawlManager
	auditor   *seo.Auditor
	batchSize int
	maxTasks  int
}

// NewAuditManager creates a new AuditManager use case. batchSize bounds how
// many pending tasks one List call advances; maxTasks bounds how many audit
// tasks Start materializes per crawl.
func NewAuditManager(
	auditRepo repository.AuditTaskRepository,
	crawls CrawlManager,
	auditor *seo.Auditor,
	batchSize, maxTasks int,
) AuditManager {
	return &auditManager{
		auditRepo: auditRepo,
		crawls:    crawls,
		auditor:   auditor,
		batchSize: batchSize,
		maxTasks:  maxTasks,
	}
}

func (uc *auditManager) Start(ctx context.Context, crawlID string) ([]string, int, error) {
	crawl, err := uc.crawls.Status(ctx, crawlID)
	if err != nil {
		return nil, 0, err
	}

	urls := crawl.URLs
	if len(urls) > uc.maxTasks {
		urls = urls[:uc.maxTasks]
	}

	// Partial failure isolation: a URL whose task cannot be persisted is
	// skipped, the rest still get their tasks.
	created := []string{}
	for _, u := range urls {
		task := entity.NewAuditTask(crawl.ID, u)
		id, err := uc.auditRepo.Create(ctx, task)
		if err != nil {
			slog.Warn("failed to create audit task, skipping URL",
				"crawl_id", crawl.ID, "url", u, "error", err)
			continue
		}
		created = append(created, id)
	}

	slog.Info("audit phase started", "crawl_id", crawl.ID, "created", len(created))
	return created, len(created), nil
}

func (uc *auditManager) List(ctx context.Context, crawlID string) ([]*entity.AuditTask, error) {
	id := repository.NormalizeID(crawlID)
	tasks, err := uc.auditRepo.FindByCrawlID(ctx, id)
	if err != nil {
		return nil, err
	}

	advanced := 0
	for _, task := range tasks {
		if advanced >= uc.batchSize {
			break
		}
		// Terminal tasks are immutable and do not count against the batch.
		if task.Status.Terminal() {
			continue
		}

		score, report, auditErr := uc.auditor.Audit(ctx, task.URL)
		if auditErr != nil {
			task.Fail(auditErr.Error(), maxErrorLen)
			metrics.AuditsTotal.WithLabelValues("error").Inc()
		} else {
			task.Complete(score, report)
			metrics.AuditsTotal.WithLabelValues("complete").Inc()
			metrics.AuditScore.Observe(float64(score))
		}

		// An unpersistable outcome must not stall the siblings in this batch.
		if err := uc.auditRepo.Update(ctx, task); err != nil {
			slog.Warn("failed to persist audit outcome", "audit_id", task.ID, "error", err)
		}
		advanced++
	}

	return uc.auditRepo.FindByCrawlID(ctx, id)
}

func (uc *auditManager) Report(ctx context.Context, auditID string) (*entity.AuditTask, error) {
	return uc.auditRepo.FindByID(ctx, repository.NormalizeID(auditID))
}
