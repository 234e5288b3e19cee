package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		OpenLibrary
		Audit
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	OpenLibrary struct {
		Enabled   bool // When false, new books are stored without a summary lookup
		BaseURL   string
		UserAgent string
		Timeout   time.Duration
	}
	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30, 0 keeps forever)
		CleanupSchedule string // Cron expression for the retention job
	}
	Tasks struct {
		Workers int // Background task workers
	}
)

// loadDotEnv populates the process environment from a .env file when one
// exists. Variables already set in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: could not load %s: %v", path, err)
	}
}

func NewConfig() *Config {
	loadDotEnv(DefaultEnvFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	// OpenLibrary defaults
	v.SetDefault("summary_lookup_enabled", true)
	v.SetDefault("openlibrary_base_url", DefaultOpenLibraryBaseURL)
	v.SetDefault("openlibrary_user_agent", DefaultOpenLibraryUserAgent)
	v.SetDefault("openlibrary_timeout", "8s")

	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")
	v.SetDefault("task_workers", 1)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		OpenLibrary: OpenLibrary{
			Enabled:   v.GetBool("SUMMARY_LOOKUP_ENABLED"),
			BaseURL:   v.GetString("OPENLIBRARY_BASE_URL"),
			UserAgent: v.GetString("OPENLIBRARY_USER_AGENT"),
			Timeout:   v.GetDuration("OPENLIBRARY_TIMEOUT"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Workers: v.GetInt("TASK_WORKERS"),
		},
	}
}
