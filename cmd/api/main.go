package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/seo-audit-service/internal/adapter/memory"
	"github.com/user/seo-audit-service/internal/adapter/postgres"
	redis_adapter "github.com/user/seo-audit-service/internal/adapter/redis"
	"github.com/user/seo-audit-service/internal/crawler"
	"github.com/user/seo-audit-service/internal/delivery/http/handler"
	"github.com/user/seo-audit-service/internal/delivery/http/router"
	"github.com/user/seo-audit-service/internal/fetch"
	"github.com/user/seo-audit-service/internal/repository"
	"github.com/user/seo-audit-service/internal/seo"
	"github.com/user/seo-audit-service/internal/usecase"
	"github.com/user/seo-audit-service/pkg/config"
	"github.com/user/seo-audit-service/pkg/logger"
)

// pingerFunc adapts a plain function to the handler.Pinger probe.
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	ctx := context.Background()
	pingers := map[string]handler.Pinger{}

	// --- Task store ---
	var crawlRepo repository.CrawlTaskRepository
	var auditRepo repository.AuditTaskRepository

	switch cfg.StoreBackend {
	case "memory":
		crawlRepo = memory.NewCrawlStore()
		auditRepo = memory.NewAuditStore()
		slog.Info("Using in-memory task store")
	default:
		pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		dbpool, err := pgxpool.New(ctx, pgConnString)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()
		if err := postgres.Migrate(ctx, dbpool); err != nil {
			slog.Error("Unable to bootstrap task tables", "error", err)
			os.Exit(1)
		}
		crawlRepo = postgres.NewCrawlTaskRepo(dbpool)
		auditRepo = postgres.NewAuditTaskRepo(dbpool)
		pingers["postgres"] = pingerFunc(dbpool.Ping)
		slog.Info("PostgreSQL connection pool established")
	}

	// --- Fetchers ---
	crawlFetcher := fetch.NewHTTPFetcher(cfg.CrawlFetchTimeout, cfg.UserAgent, "crawl")

	var auditFetcher repository.Fetcher = fetch.NewHTTPFetcher(cfg.AuditFetchTimeout, cfg.UserAgent, "audit")
	if cfg.PageCacheTTL > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Warn("Redis unavailable, page cache disabled", "error", err)
		} else {
			auditFetcher = fetch.NewCachedFetcher(auditFetcher, redis_adapter.NewPageCache(rdb), cfg.PageCacheTTL)
			pingers["redis"] = pingerFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
			slog.Info("Redis page cache enabled", "ttl", cfg.PageCacheTTL.String())
		}
	}

	// --- Use Cases ---
	stepper := crawler.NewStepper(crawlFetcher, cfg.CrawlStepBudget, cfg.CrawlMaxURLs)
	crawlManager := usecase.NewCrawlManager(crawlRepo, stepper)
	auditor := seo.NewAuditor(auditFetcher)
	auditManager := usecase.NewAuditManager(auditRepo, crawlManager, auditor, cfg.AuditBatchSize, cfg.AuditMaxTasks)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(crawlManager, auditManager, pingers)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     httpRouter,
		ReadTimeout: 5 * time.Second,
		// One audit poll can run a full batch of sequential fetches, each
		// bounded by the audit fetch timeout.
		WriteTimeout: time.Duration(cfg.AuditBatchSize+1) * cfg.AuditFetchTimeout,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
