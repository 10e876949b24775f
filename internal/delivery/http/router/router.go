package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/seo-audit-service/internal/delivery/http/handler"
	"github.com/user/seo-audit-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.HandleLiveness)
	mux.HandleFunc("GET /test", h.HandleDiagnostics)

	mux.HandleFunc("POST /api/crawl/start", h.HandleStartCrawl)
	mux.HandleFunc("GET /api/crawl/status", h.HandleCrawlStatus)
	mux.HandleFunc("GET /api/crawl/urls", h.HandleCrawlURLs)

	mux.HandleFunc("POST /api/audit/start", h.HandleStartAudit)
	mux.HandleFunc("GET /api/audit/list", h.HandleAuditList)
	mux.HandleFunc("GET /api/audit/report", h.HandleAuditReport)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
