package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/api"
	"github.com/MikeSquared-Agency/moodline/internal/config"
	"github.com/MikeSquared-Agency/moodline/internal/hermes"
	"github.com/MikeSquared-Agency/moodline/internal/slack"
	"github.com/MikeSquared-Agency/moodline/internal/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and NATS worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg.LogLevel, os.Stdout, true)
	slog.SetDefault(logger)

	logger.Info("moodline starting", "port", cfg.Port, "scorer", cfg.Scorer, "version", version)

	captions := buildCaptionBackend(ctx, cfg, logger)
	defer captions.Close()

	scorer := buildScorer(cfg, logger)

	analyzer := analysis.New(captions.source, captions.details, scorer, analysis.Options{
		ChunkDuration: cfg.ChunkDuration,
		Concurrency:   cfg.ScoringConcurrency,
		ScorerName:    cfg.Scorer,
	}, logger)

	// Database (optional; without it analyses are not kept)
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		analyzer.WithStore(db)
		logger.Info("database connected")
	} else {
		logger.Warn("DATABASE_URL not set, analyses will not be persisted")
	}

	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		analyzer.WithNotifier(slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, logger))
		logger.Info("slack poster ready", "channel", cfg.SlackChannel)
	}

	// NATS/Hermes
	hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
	if err != nil {
		return err
	}
	defer hermesClient.Close()
	analyzer.WithPublisher(hermesClient)
	logger.Info("NATS connected", "url", cfg.NatsURL)

	if err := hermesClient.Subscribe(hermes.SubjectAnalysisRequested, analyzer.HandleAnalysisRequested); err != nil {
		return err
	}

	srv := api.NewServer(cfg.Port, cfg.APIToken, analyzer, cfg.Scorer)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if err := hermesClient.Publish(hermes.SubjectRegistered, hermes.Registration{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Port:      strconv.Itoa(cfg.Port),
		Scorer:    cfg.Scorer,
		Version:   version,
	}); err != nil {
		logger.Warn("failed to publish registration", "error", err)
	}

	logger.Info("moodline ready", "port", cfg.Port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	if err := hermesClient.Drain(shutdownCtx); err != nil {
		logger.Warn("nats drain", "error", err)
	}
	logger.Info("moodline stopped")
	return nil
}
