package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/seo-audit-service/internal/delivery/http/request"
	"github.com/user/seo-audit-service/internal/delivery/http/response"
	"github.com/user/seo-audit-service/internal/entity"
	"github.com/user/seo-audit-service/internal/repository"
	"github.com/user/seo-audit-service/internal/usecase"
)

const serviceName = "SEO Audit API"

// Pinger is a liveness probe for one backing store, used by the diagnostic
// endpoint only.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	crawls  usecase.CrawlManager
	audits  usecase.AuditManager
	pingers map[string]Pinger
}

// NewHandler creates the HTTP handler set. pingers maps a store name to its
// probe; nil or empty is fine for store backends without one.
func NewHandler(crawls usecase.CrawlManager, audits usecase.AuditManager, pingers map[string]Pinger) *Handler {
	return &Handler{
		crawls:  crawls,
		audits:  audits,
		pingers: pingers,
	}
}

// HandleStartCrawl creates a new crawl task for the submitted seed URL.
func (h *Handler) HandleStartCrawl(w http.ResponseWriter, r *http.Request) {
	var req request.StartCrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	taskID, err := h.crawls.Start(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyURL) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to start crawl", "url", req.URL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.StartCrawlResponse{TaskID: taskID})
}

// HandleCrawlStatus performs one crawl stepper increment and returns the
// merged task state.
func (h *Handler) HandleCrawlStatus(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		h.writeJSONError(w, "task_id query parameter is required", http.StatusBadRequest)
		return
	}

	task, err := h.crawls.Status(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Task not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get crawl status", "task_id", taskID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, task)
}

// HandleCrawlURLs returns the discovered URL list, advancing the crawl by
// one step the same way the status endpoint does.
func (h *Handler) HandleCrawlURLs(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		h.writeJSONError(w, "task_id query parameter is required", http.StatusBadRequest)
		return
	}

	urls, err := h.crawls.URLs(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Task not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get crawl urls", "task_id", taskID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if urls == nil {
		urls = []string{}
	}
	h.writeJSON(w, http.StatusOK, response.CrawlURLsResponse{URLs: urls})
}

// HandleStartAudit materializes audit tasks for the crawl's first URLs.
func (h *Handler) HandleStartAudit(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		h.writeJSONError(w, "task_id query parameter is required", http.StatusBadRequest)
		return
	}

	created, count, err := h.audits.Start(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Task not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to start audit", "task_id", taskID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.StartAuditResponse{Created: created, Count: count})
}

// HandleAuditList advances one audit batch and returns the refreshed list.
func (h *Handler) HandleAuditList(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		h.writeJSONError(w, "task_id query parameter is required", http.StatusBadRequest)
		return
	}

	tasks, err := h.audits.List(r.Context(), taskID)
	if err != nil {
		slog.Error("failed to list audits", "task_id", taskID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if tasks == nil {
		tasks = []*entity.AuditTask{}
	}
	h.writeJSON(w, http.StatusOK, response.AuditListResponse{Tasks: tasks})
}

// HandleAuditReport returns a single audit task document.
func (h *Handler) HandleAuditReport(w http.ResponseWriter, r *http.Request) {
	auditID := r.URL.Query().Get("audit_id")
	if auditID == "" {
		h.writeJSONError(w, "audit_id query parameter is required", http.StatusBadRequest)
		return
	}

	task, err := h.audits.Report(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Audit not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get audit report", "audit_id", auditID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, task)
}

// HandleLiveness answers GET / for load balancers and smoke checks.
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.LivenessResponse{Status: "ok", Name: serviceName})
}

// HandleDiagnostics answers GET /test with per-store health, the diagnostic
// companion to the liveness endpoint.
func (h *Handler) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	stores := make(map[string]string, len(h.pingers))
	healthy := true
	for name, pinger := range h.pingers {
		if err := pinger.Ping(ctx); err != nil {
			slog.Error("store health check failed", "store", name, "error", err)
			stores[name] = "unhealthy"
			healthy = false
		} else {
			stores[name] = "healthy"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, map[string]any{
		"backend": "running",
		"stores":  stores,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
