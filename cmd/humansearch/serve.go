package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/indexer"
	"github.com/hyperjump/humansearch/internal/search"
	"github.com/hyperjump/humansearch/internal/server"
	"github.com/hyperjump/humansearch/internal/watcher"
	"github.com/hyperjump/humansearch/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and index watched folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	debug := cfg.Debug || opts.debug
	logger, err := utils.NewLogger(debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded", zap.String("config_path", path), zap.Bool("debug", debug))

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.Watch.Directories) > 0 {
		w, err := startWatcher(ctx, cfg, engine, logger)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Close()
	}

	srv := server.NewServer(engine, &cfg.Server, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// startWatcher indexes the files already in the watched folders and keeps indexing
// files written to them until ctx is done.
func startWatcher(ctx context.Context, cfg *config.Config, engine *search.Engine, logger *zap.Logger) (*watcher.Watcher, error) {
	idx := indexer.NewIndexer(engine,
		indexer.WithLogger(logger),
		indexer.WithExtensions(cfg.Watch.Extensions))

	onChange := func(path string) {
		if _, err := idx.IndexFile(ctx, path); err != nil {
			logger.Warn("watch index file failed", zap.String("path", path), zap.Error(err))
		}
	}
	w, err := watcher.New(watcher.Config{
		Roots:      cfg.Watch.Directories,
		Extensions: cfg.Watch.Extensions,
		Recursive:  cfg.Watch.RecursiveOrDefault(),
	}, onChange, idx.HandleRemove, watcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	w.Sync()
	go w.Run(ctx)
	logger.Info("watching folders", zap.Strings("roots", w.Roots()), zap.Int("documents", engine.DocumentCount()))
	return w, nil
}
