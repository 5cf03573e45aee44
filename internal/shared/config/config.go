package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendLocal    = "local"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string   `validate:"oneof=dev local staging production"`
	LogLevel        string   `validate:"oneof=debug info warn error"`
	CORSAllowOrigin []string
	StoreBackend    string   `validate:"oneof=local s3 postgres redis memory"`
	StoreKey        string   `validate:"required"`
	LocalStoreDir   string   `validate:"required_if=StoreBackend local"`
	AWSRegion       string
	S3Bucket        string   `validate:"required_if=StoreBackend s3"`
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string   `validate:"required_if=StoreBackend postgres"`
	RedisURL        string   `validate:"required_if=StoreBackend redis"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Existing
	// environment variables win over file values.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:        normalizeLevel(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		StoreBackend:    normalizeBackend(getEnv("STORE_BACKEND", BackendLocal)),
		StoreKey:        strings.TrimSpace(getEnv("STORE_KEY", "internships")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}
}

// Validate reports missing settings for the selected backend.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return "debug"
	case "warn", "warning":
		return "warn"
	case "error":
		return "error"
	default:
		return "info"
	}
}

// normalizeBackend resolves aliases. Unknown names pass through so Validate
// rejects them.
func normalizeBackend(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return BackendLocal
	case BackendS3:
		return BackendS3
	case BackendPostgres, "postgresql", "pg":
		return BackendPostgres
	case BackendRedis:
		return BackendRedis
	case BackendMemory, "mem":
		return BackendMemory
	case BackendLocal:
		return BackendLocal
	default:
		return name
	}
}
