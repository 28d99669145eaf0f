// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration, loaded from environment variables
// (optionally via a .env file).
type Config struct {
	DataDir      string // Base directory for the sqlite databases, always absolute
	Port         int
	LogLevel     string
	DevMode      bool
	HistoryLimit int // Max draws fed to strategies per generation call

	// Cron schedules for the background jobs (robfig/cron syntax,
	// descriptors like "@hourly" allowed). Empty disables the job.
	StatsRefreshCron      string
	QuarantineCleanupCron string
	BackupCron            string

	Backup BackupConfig
}

// BackupConfig holds the S3-compatible backup target. Backups are disabled
// unless Enabled is set and the bucket is configured.
type BackupConfig struct {
	Enabled         bool
	Endpoint        string // Custom endpoint for S3-compatible stores (R2, MinIO); empty for AWS
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	RetentionDays   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("LOTTOLAB_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               absDataDir,
		Port:                  getEnvAsInt("PORT", 8080),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		HistoryLimit:          getEnvAsInt("HISTORY_LIMIT", 200),
		StatsRefreshCron:      getEnv("STATS_REFRESH_CRON", "@hourly"),
		QuarantineCleanupCron: getEnv("QUARANTINE_CLEANUP_CRON", "@midnight"),
		BackupCron:            getEnv("BACKUP_CRON", "30 3 * * *"),
		Backup: BackupConfig{
			Enabled:         getEnvAsBool("BACKUP_ENABLED", false),
			Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
			Region:          getEnv("BACKUP_S3_REGION", "auto"),
			Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
			AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
			RetentionDays:   getEnvAsInt("BACKUP_RETENTION_DAYS", 14),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration coherence.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.Backup.Enabled && c.Backup.Bucket == "" {
		return fmt.Errorf("backups enabled but BACKUP_S3_BUCKET is not set")
	}
	return nil
}

// DatabasePath returns the path of a named database inside the data dir.
func (c *Config) DatabasePath(name string) string {
	return filepath.Join(c.DataDir, name+".db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
