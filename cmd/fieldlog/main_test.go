package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localarchive "github.com/vbonduro/fieldlog/internal/archive/local"
	"github.com/vbonduro/fieldlog/internal/config"
	"github.com/vbonduro/fieldlog/internal/domain"
	"github.com/vbonduro/fieldlog/internal/vision/ollama"
)

func TestNewCaptioner(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	c, err := newCaptioner(ctx, &config.Config{CaptionBackend: "none"}, logger)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = newCaptioner(ctx, &config.Config{CaptionBackend: "ollama", OllamaHost: "http://localhost:11434", OllamaModel: "moondream"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaCaptioner{}, c)
}

func TestNewArchiveLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	a, err := newArchive(context.Background(), &config.Config{ArchiveBackend: "local", ArchivePath: dir}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &localarchive.LocalArchive{}, a)
}

func TestBuildReportFilter(t *testing.T) {
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	f, err := buildReportFilter("", "", "ALL", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", f.StartDate)
	assert.Equal(t, "2024-03-12", f.EndDate)
	assert.Nil(t, f.CategoryID)

	f, err = buildReportFilter("2024-02-01", "", "4", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", f.StartDate)
	assert.Empty(t, f.EndDate)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, domain.ID("4"), *f.CategoryID)

	_, err = buildReportFilter("12/03/2024", "", "ALL", now)
	assert.True(t, domain.IsValidation(err))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "fieldlog.db"))
	t.Setenv("ARCHIVE_LOCAL_PATH", filepath.Join(dir, "reports"))
	t.Setenv("CAPTION_BACKEND", "none")
	t.Setenv("ARCHIVE_BACKEND", "local")
	t.Setenv("BOOTSTRAP_SAMPLES", "true")
	t.Setenv("LOG_LEVEL", "error")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	run := func(args ...string) string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append(args, "--env-file", filepath.Join(dir, "absent.env")))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	out := run("init")
	assert.Contains(t, out, "categories seeded: true")
	assert.Contains(t, out, "sample records: 2")

	out = run("init")
	assert.Contains(t, out, "categories seeded: false")
	assert.Contains(t, out, "sample records: 0")

	_, err := os.Stat(filepath.Join(dir, "fieldlog.db"))
	require.NoError(t, err)

	out = run("report", "--start", "2000-01-01", "--end", "2999-12-31")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Date,Time,Service Type,Location,Crew,Notes", lines[0])
	assert.Len(t, lines, 3)
}
