package request

// StartCrawlRequest is the payload for POST /api/crawl/start.
type StartCrawlRequest struct {
	URL string `json:"url"`
}
