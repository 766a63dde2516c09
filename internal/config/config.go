// Package config holds runtime configuration for the vessel-inspection
// service. Values are read from the environment once at startup and passed
// down explicitly; no package keeps its own globals.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage strategy selector values.
const (
	StorageLocal       = "local"
	StorageObjectStore = "object-store"
)

// Config holds all service configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// StorageStrategy selects the photo storage backend: "local" or "object-store".
	StorageStrategy string

	// UploadsRoot is the directory holding per-survey photo directories
	// (local strategy only).
	UploadsRoot string

	// S3Bucket and S3Region configure the object-store strategy.
	S3Bucket string
	S3Region string

	// MaxUploadBytes caps a single photo upload. Default 10 MiB.
	MaxUploadBytes int64

	// PresignTTL is the lifetime of presigned object-store URLs.
	PresignTTL time.Duration
}

// Load reads configuration from the environment, applying defaults where a
// variable is unset. It fails fast on a missing DATABASE_URL or an unknown
// storage strategy.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		StorageStrategy: getEnv("STORAGE_STRATEGY", StorageLocal),
		UploadsRoot:     getEnv("UPLOADS_ROOT", "uploads/photos"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		MaxUploadBytes:  10 * 1024 * 1024,
		PresignTTL:      15 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	switch cfg.StorageStrategy {
	case StorageLocal:
	case StorageObjectStore:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set when STORAGE_STRATEGY=%s", StorageObjectStore)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_STRATEGY %q (want %q or %q)",
			cfg.StorageStrategy, StorageLocal, StorageObjectStore)
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", raw)
		}
		cfg.MaxUploadBytes = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
