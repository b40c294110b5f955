package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Set only when a reverse proxy rewrites X-Forwarded-For / X-Real-IP;
	// without one the headers are client-controlled.
	TrustProxyHeaders bool

	// CORS
	CORSAllowedOrigins []string

	// Contact discovery (optional, discovery endpoint returns 503 without it)
	HunterAPIKey  string
	HunterTimeout time.Duration

	// Goals
	// When true, recording an application against a week without a goal
	// row creates one with zero targets instead of skipping the counter.
	GoalLazyCreateOnApply bool

	// Uploads
	MaxUploadMB int64

	// Observability (optional)
	SentryDSN string

	// Storage backend: "local" or "s3"
	StorageBackend string
	StoragePath    string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "JobBuddy"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/jobbuddy.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:         envRequired("JWT_SECRET"),
		JWTExpiry:         envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),

		// CORS
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Contact discovery
		HunterAPIKey:  envString("HUNTER_API_KEY", ""),
		HunterTimeout: envDuration("HUNTER_TIMEOUT", 10*time.Second),

		// Goals
		GoalLazyCreateOnApply: envBool("GOAL_LAZY_CREATE_ON_APPLY", false),

		// Uploads
		MaxUploadMB: int64(envInt("MAX_UPLOAD_MB", 10)),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageBackend: envString("STORAGE_BACKEND", "local"),
		StoragePath:    envString("STORAGE_PATH", "./data/uploads"),
		S3Region:       envString("S3_REGION", ""),
		S3Bucket:       envString("S3_BUCKET", ""),
		S3AccessKey:    envString("S3_ACCESS_KEY", ""),
		S3SecretKey:    envString("S3_SECRET_KEY", ""),
		S3Endpoint:     envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures required services are configured for production
// deployments. Development allows fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.StorageBackend == "s3" && (cfg.S3Region == "" || cfg.S3Bucket == "") {
		slog.Error("production S3 storage requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_BACKEND=local to store uploads on disk")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
