package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/moodline/internal/anthropic"
	"github.com/MikeSquared-Agency/moodline/internal/config"
	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

func newLogger(level string, w io.Writer, asJSON bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func buildScorer(cfg config.Config, logger *slog.Logger) sentiment.Scorer {
	if cfg.Scorer == config.ScorerLLM {
		llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		logger.Info("llm scorer ready", "model", llm.Model())
		return sentiment.NewLLMScorer(llm, logger)
	}
	return sentiment.NewLexiconScorer(nil)
}

// captionBackend bundles the caption source, details provider and anything
// that must be closed on shutdown.
type captionBackend struct {
	source  youtube.CaptionSource
	details youtube.DetailsProvider
	redis   *redis.Client
}

func (b *captionBackend) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func buildCaptionBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) *captionBackend {
	direct := youtube.NewDirectClient(cfg.CaptionLanguage, logger)
	b := &captionBackend{source: direct, details: direct}

	if cfg.TranscriptServiceURL != "" {
		b.source = youtube.NewServiceClient(cfg.TranscriptServiceURL, cfg.CaptionLanguage)
		logger.Info("using transcript service", "url", cfg.TranscriptServiceURL)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caption cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = client.Close()
		} else {
			b.redis = client
			cached := youtube.NewCachedSource(b.source, client, cfg.CaptionLanguage, cfg.CaptionCacheTTL, logger).WithDetails(direct)
			b.source, b.details = cached, cached
			logger.Info("caption cache ready", "addr", cfg.RedisAddr, "ttl", cfg.CaptionCacheTTL.String())
		}
	}

	return b
}
