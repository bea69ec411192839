package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/config"
	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/metrics"
	"github.com/rpggio/deepwork/internal/storage"
)

// app holds the process-wide dependencies built once at startup.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *storage.DB
	clock    clock.Clock
	metrics  *metrics.Metrics
	sessions *session.Service
	closers  []io.Closer
}

func loadApp(ctx context.Context, configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}

	logWriter := logOut
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, fileWriter)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	a.clock = clock.System{Location: loc}

	if cfg.DB.Driver == storage.DriverSQLite {
		if err := ensureDBDir(cfg.DB.DSN); err != nil {
			a.Close()
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
	}

	db, err := storage.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		a.logger.Error("failed to open database", "driver", cfg.DB.Driver, "error", err)
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append([]io.Closer{db}, a.closers...)

	if err := db.EnsureSchema(ctx); err != nil {
		a.logger.Error("failed to create schema", "driver", cfg.DB.Driver, "error", err)
		a.Close()
		return nil, err
	}

	a.metrics = metrics.New(prometheus.NewRegistry())
	a.sessions = session.NewService(
		storage.NewSessionRepository(db),
		a.logger,
		session.WithClock(a.clock),
		session.WithObserver(a.metrics),
	)
	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
