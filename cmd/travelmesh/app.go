package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/travelmesh"
	"github.com/hupe1980/travelmesh/aggregator"
	"github.com/hupe1980/travelmesh/artifact"
	"github.com/hupe1980/travelmesh/config"
	"github.com/hupe1980/travelmesh/coordinator"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/metrics"
	"github.com/hupe1980/travelmesh/model"
)

// app holds everything shared by the chat and serve commands.
type app struct {
	cfg      *config.Config
	logger   logging.Logger
	provider model.Provider
	store    artifact.Store
	metrics  *metrics.Recorder
	closers  []io.Closer
}

func newApp(ctx context.Context, flags *globalFlags, logOut io.Writer) (*app, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", flags.envFile, err)
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Log.Level
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: logOut,
	})

	provider, err := travelmesh.NewProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		// Sessions build a fresh team per Mesh; report key problems once.
		provider: model.CheckOnce(provider),
		metrics:  metrics.New(func(o *metrics.Options) { o.RuntimeCollectors = true }),
	}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.History.Backend {
	case config.HistoryFile:
		a.store = artifact.NewFileStore(a.cfg.History.Dir)
	case config.HistorySQLite:
		dsn := a.cfg.History.DSN
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		s, err := artifact.OpenSQLite(ctx, dsn)
		if err != nil {
			return err
		}
		a.store = s
		a.closers = append(a.closers, s)
	case config.HistoryMemory:
		a.store = artifact.NewInMemoryStore()
	case config.HistoryNone:
	}

	a.logger.Debug("guide history", "backend", a.cfg.History.Backend)

	return nil
}

// newMesh builds a Mesh wired to the shared store and metrics.
func (a *app) newMesh(notify func(travelmesh.Event)) (*travelmesh.Mesh, error) {
	return travelmesh.New(a.provider, func(o *travelmesh.Options) {
		o.Logger = a.logger
		o.Store = a.store
		o.Hooks = []coordinator.Hook{a.metrics.Hook()}
		o.GuideObserver = func(_ *aggregator.Guide, err error) { a.metrics.ObserveGuide(err == nil) }
		o.Notify = notify
	})
}

func (a *app) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
