package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	// StoreBackend selects the task store: "postgres" or "memory".
	StoreBackend string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Crawl stepper bounds.
	CrawlStepBudget int
	CrawlMaxURLs    int

	// Audit phase bounds.
	AuditBatchSize int
	AuditMaxTasks  int

	CrawlFetchTimeout time.Duration
	AuditFetchTimeout time.Duration
	UserAgent         string

	// PageCacheTTL is how long fetched pages stay in the Redis cache.
	// Zero disables the cache.
	PageCacheTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StoreBackend:      getEnv("STORE_BACKEND", "postgres"),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnv("POSTGRES_USER", "user"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:        getEnv("POSTGRES_DB", "seoaudit"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		CrawlStepBudget:   getEnvAsInt("CRAWL_STEP_BUDGET", 2),
		CrawlMaxURLs:      getEnvAsInt("CRAWL_MAX_URLS", 100),
		AuditBatchSize:    getEnvAsInt("AUDIT_BATCH_SIZE", 5),
		AuditMaxTasks:     getEnvAsInt("AUDIT_MAX_TASKS", 20),
		CrawlFetchTimeout: getEnvAsDuration("CRAWL_FETCH_TIMEOUT_SECONDS", 6) * time.Second,
		AuditFetchTimeout: getEnvAsDuration("AUDIT_FETCH_TIMEOUT_SECONDS", 8) * time.Second,
		UserAgent:         getEnv("USER_AGENT", "SEO-Audit-Bot/1.0"),
		PageCacheTTL:      getEnvAsDuration("PAGE_CACHE_TTL_SECONDS", 300) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
