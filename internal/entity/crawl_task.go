package entity

import "time"

// TaskStatus is the lifecycle state shared by crawl and audit tasks.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusComplete   TaskStatus = "complete"
	StatusError      TaskStatus = "error"
)

// Terminal reports whether a task in this status will not be mutated again.
func (s TaskStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// CrawlTask is the persisted state of one incremental crawl. It is advanced
// in place by the crawl stepper on every status poll.
type CrawlTask struct {
	ID         string     `json:"id"`
	SeedURL    string     `json:"seed_url"`
	Status     TaskStatus `json:"status"`
	URLs       []string   `json:"urls"`
	TotalFound int        `json:"total_found"`
	Progress   int        `json:"progress"` // 0-100, monotonically non-decreasing
	// Error is reserved: the crawl stepper swallows per-page failures and
	// never writes it.
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCrawlTask returns a pending task for the given seed with no URLs
// discovered yet. The store assigns the ID on create.
func NewCrawlTask(seedURL string) *CrawlTask {
	now := time.Now().UTC()
	return &CrawlTask{
		SeedURL:   seedURL,
		Status:    StatusPending,
		URLs:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
