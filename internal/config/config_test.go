package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.CaptionBackend)
	assert.NotEmpty(t, cfg.ArchiveBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("CAPTION_BACKEND", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-test123")
	t.Setenv("ARCHIVE_BACKEND", "s3")
	t.Setenv("ARCHIVE_S3_BUCKET", "reports")
	t.Setenv("ARCHIVE_S3_PATH_STYLE", "true")
	t.Setenv("BOOTSTRAP_SAMPLES", "false")
	t.Setenv("LOG_FORMAT", "text")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "gemini", cfg.CaptionBackend)
	assert.Equal(t, "g-test123", cfg.GeminiAPIKey)
	assert.Equal(t, "s3", cfg.ArchiveBackend)
	assert.Equal(t, "reports", cfg.S3Bucket)
	assert.True(t, cfg.S3PathStyle)
	assert.False(t, cfg.BootstrapSamples)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("BOOTSTRAP_SAMPLES", "maybe")
	assert.True(t, Load().BootstrapSamples)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"claude without key", func(c *Config) { c.CaptionBackend = "claude"; c.ClaudeAPIKey = "" }, "CLAUDE_API_KEY"},
		{"gemini without key", func(c *Config) { c.CaptionBackend = "gemini"; c.GeminiAPIKey = "" }, "GEMINI_API_KEY"},
		{"unknown caption backend", func(c *Config) { c.CaptionBackend = "openai" }, "CAPTION_BACKEND"},
		{"s3 without bucket", func(c *Config) { c.ArchiveBackend = "s3"; c.S3Bucket = "" }, "ARCHIVE_S3_BUCKET"},
		{"unknown archive backend", func(c *Config) { c.ArchiveBackend = "ftp" }, "ARCHIVE_BACKEND"},
		{"unknown log format", func(c *Config) { c.LogFormat = "logfmt" }, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CaptionBackend: "none", ArchiveBackend: "local", LogFormat: "json"}
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FIELDLOG_TEST_DOTENV=from-file\nLISTEN_ADDR=:7000\n"), 0600))
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Cleanup(func() { _ = os.Unsetenv("FIELDLOG_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv("FIELDLOG_TEST_DOTENV"))
	assert.Equal(t, ":9000", os.Getenv("LISTEN_ADDR"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
