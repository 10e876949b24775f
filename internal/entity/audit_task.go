package entity

import "time"

// AuditTask is one page audit derived from a crawl. Many audit tasks
// reference one crawl by CrawlID; the crawl does not track them back.
//
// For a terminal task exactly one of {Score+Report, Error} is populated:
// Score and Report on complete, Error on error.
type AuditTask struct {
	ID        string     `json:"id"`
	CrawlID   string     `json:"crawl_id"`
	URL       string     `json:"url"`
	Status    TaskStatus `json:"status"`
	Score     *int       `json:"score,omitempty"`
	Report    *Report    `json:"report,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewAuditTask returns a pending audit for one crawled URL.
func NewAuditTask(crawlID, url string) *AuditTask {
	now := time.Now().UTC()
	return &AuditTask{
		CrawlID:   crawlID,
		URL:       url,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete transitions the task to its terminal success state.
func (t *AuditTask) Complete(score int, report *Report) {
	t.Status = StatusComplete
	t.Score = &score
	t.Report = report
	t.UpdatedAt = time.Now().UTC()
}

// Fail transitions the task to its terminal error state. The message is
// truncated so oversized upstream errors don't bloat the stored document.
func (t *AuditTask) Fail(msg string, maxLen int) {
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	t.Status = StatusError
	t.Error = msg
	t.UpdatedAt = time.Now().UTC()
}
