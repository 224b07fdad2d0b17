package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/supplysift/supplysift/internal/api"
	"github.com/supplysift/supplysift/internal/config"
	"github.com/supplysift/supplysift/internal/describe"
	"github.com/supplysift/supplysift/internal/fetcher"
	"github.com/supplysift/supplysift/internal/pipeline"
	"github.com/supplysift/supplysift/internal/storage"
)

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction API server",
		Long:  "Start the HTTP API: extract endpoints for operator tooling and the confirm endpoint for persisting reviewed records.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(&cfg.Logging)

	pipe, err := buildPipeline(cfg, logger, true)
	if err != nil {
		return err
	}
	defer pipe.Close()

	store, err := buildStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close(context.Background())
	}

	server := api.NewServer(&cfg.Server, pipe, store, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	return server.ListenAndServe()
}

// buildPipeline assembles the extraction pipeline from config. withBrowser
// controls whether the dynamic fetcher is constructed at all.
func buildPipeline(cfg *config.Config, logger *slog.Logger, withBrowser bool) (*pipeline.Pipeline, error) {
	static, err := fetcher.NewHTTPFetcher(&cfg.Fetcher, logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	var dynamic fetcher.Fetcher
	if withBrowser {
		dynamic = fetcher.NewBrowserFetcher(&cfg.Browser, cfg.Fetcher.UserAgent, logger)
	}

	synth := describe.NewSynthesizer(buildGenerator(&cfg.AI, logger), cfg.Extract.MinDescriptionLength, logger)

	return pipeline.New(static, dynamic, synth, &cfg.Extract, logger), nil
}

func buildGenerator(cfg *config.AIConfig, logger *slog.Logger) describe.TextGenerator {
	if !cfg.Enabled || cfg.APIKey == "" {
		if cfg.Enabled {
			logger.Warn("ai enabled but no api key set, descriptions use the template fallback")
		}
		return nil
	}
	switch cfg.Provider {
	case "openai":
		return describe.NewOpenAIGenerator(cfg.Endpoint, cfg.Model, cfg.APIKey)
	default:
		return describe.NewGeminiGenerator(cfg.Model, cfg.APIKey)
	}
}

func buildStore(cfg *config.Config, logger *slog.Logger) (storage.ProductStore, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileStore(cfg.Storage.FilePath, logger)
	default:
		return storage.NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection, logger)
	}
}
