package response

import "github.com/user/seo-audit-service/internal/entity"

// StartCrawlResponse carries the id of a freshly created crawl task.
type StartCrawlResponse struct {
	TaskID string `json:"task_id"`
}

// CrawlURLsResponse lists the URLs a crawl has discovered so far.
type CrawlURLsResponse struct {
	URLs []string `json:"urls"`
}

// StartAuditResponse reports the audit tasks materialized for a crawl.
type StartAuditResponse struct {
	Created []string `json:"created"`
	Count   int      `json:"count"`
}

// AuditListResponse is the full audit task list for a crawl.
type AuditListResponse struct {
	Tasks []*entity.AuditTask `json:"tasks"`
}

// LivenessResponse is the GET / payload.
type LivenessResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}
