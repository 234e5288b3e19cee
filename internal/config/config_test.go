package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestNewConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.True(t, cfg.OpenLibrary.Enabled)
	assert.Equal(t, DefaultOpenLibraryBaseURL, cfg.OpenLibrary.BaseURL)
	assert.Equal(t, DefaultOpenLibraryUserAgent, cfg.OpenLibrary.UserAgent)
	assert.Equal(t, 8*time.Second, cfg.OpenLibrary.Timeout)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.Equal(t, 1, cfg.Tasks.Workers)
}

func TestNewConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.sqlite")
	t.Setenv("SUMMARY_LOOKUP_ENABLED", "false")
	t.Setenv("OPENLIBRARY_TIMEOUT", "3s")
	t.Setenv("TASK_WORKERS", "4")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.sqlite", cfg.Database.Path)
	assert.False(t, cfg.OpenLibrary.Enabled)
	assert.Equal(t, 3*time.Second, cfg.OpenLibrary.Timeout)
	assert.Equal(t, 4, cfg.Tasks.Workers)
}

func TestNewConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	err := os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte("AUDIT_RETENTION_DAYS=7\nHOST=127.0.0.1\n"), 0o644)
	assert.NoError(t, err)
	// Pre-set so t.Setenv restores the original values after the test,
	// and so the environment wins over the file.
	t.Setenv("HOST", "10.0.0.1")
	t.Setenv("AUDIT_RETENTION_DAYS", "")
	os.Unsetenv("AUDIT_RETENTION_DAYS")

	cfg := NewConfig()

	assert.Equal(t, 7, cfg.Audit.RetentionDays)
	assert.Equal(t, "10.0.0.1", cfg.HTTP.Host)
}
