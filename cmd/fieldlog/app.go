package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vbonduro/fieldlog/internal/archive"
	localarchive "github.com/vbonduro/fieldlog/internal/archive/local"
	s3archive "github.com/vbonduro/fieldlog/internal/archive/s3"
	"github.com/vbonduro/fieldlog/internal/config"
	"github.com/vbonduro/fieldlog/internal/db"
	"github.com/vbonduro/fieldlog/internal/logging"
	"github.com/vbonduro/fieldlog/internal/metrics"
	"github.com/vbonduro/fieldlog/internal/service"
	"github.com/vbonduro/fieldlog/internal/store"
	"github.com/vbonduro/fieldlog/internal/vision"
	claudevision "github.com/vbonduro/fieldlog/internal/vision/claude"
	geminivision "github.com/vbonduro/fieldlog/internal/vision/gemini"
	ollamavision "github.com/vbonduro/fieldlog/internal/vision/ollama"
)

// app holds the wired components shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	database *sql.DB
	registry *prometheus.Registry
	service  *service.FieldService
	closers  []func()
}

// newApp loads configuration, opens the database and wires the service.
// The caller must call close.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, cleanup, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){cleanup}}

	a.database, err = db.Open(cfg.DBPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := a.database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	})

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(a.registry)

	records := store.NewRecordStore(a.database)
	records.OnMalformed(func(string) { m.MalformedRecovered.Inc() })

	opts := []service.Option{service.WithMetrics(m)}
	captioner, err := newCaptioner(ctx, cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	if captioner != nil {
		opts = append(opts, service.WithCaptioner(captioner))
	}
	arc, err := newArchive(ctx, cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	opts = append(opts, service.WithArchive(arc))

	a.service = service.NewFieldService(
		store.NewCategoryStore(a.database),
		store.NewCrewStore(a.database),
		records,
		logger,
		opts...,
	)
	return a, nil
}

// prepare seeds the catalog and, when enabled, the sample records.
func (a *app) prepare(ctx context.Context) error {
	if _, err := a.service.Initialize(ctx); err != nil {
		return err
	}
	if !a.cfg.BootstrapSamples {
		return nil
	}
	if _, err := a.service.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap sample records: %w", err)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newCaptioner returns nil when captioning is disabled.
func newCaptioner(ctx context.Context, cfg *config.Config, logger *slog.Logger) (vision.Captioner, error) {
	switch cfg.CaptionBackend {
	case "claude":
		logger.Info("using Claude caption backend", "model", cfg.ClaudeModel)
		return claudevision.NewClaudeCaptioner(cfg.ClaudeAPIKey, cfg.ClaudeModel), nil
	case "gemini":
		logger.Info("using Gemini caption backend", "model", cfg.GeminiModel)
		c, err := geminivision.NewGeminiCaptioner(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini captioner: %w", err)
		}
		return c, nil
	case "ollama":
		logger.Info("using Ollama caption backend", "model", cfg.OllamaModel)
		return ollamavision.NewOllamaCaptioner(cfg.OllamaHost, cfg.OllamaModel), nil
	default:
		logger.Info("photo captioning disabled")
		return nil, nil
	}
}

func newArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (archive.Archive, error) {
	switch cfg.ArchiveBackend {
	case "s3":
		logger.Info("using S3 report archive", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		a, err := s3archive.New(ctx, s3archive.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 archive: %w", err)
		}
		return a, nil
	default:
		logger.Info("using local report archive", "path", cfg.ArchivePath)
		a, err := localarchive.NewLocalArchive(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize report archive: %w", err)
		}
		return a, nil
	}
}
