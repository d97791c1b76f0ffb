package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

const (
	ScorerLexicon = "lexicon"
	ScorerLLM     = "llm"
)

type Config struct {
	Port                 int
	NatsURL              string
	NatsToken            string
	DatabaseURL          string
	RedisAddr            string
	CaptionCacheTTL      time.Duration
	LogLevel             string
	AnthropicAPIKey      string
	AnthropicModel       string
	Scorer               string
	SlackBotToken        string
	SlackChannel         string
	APIToken             string
	ChunkDuration        float64
	ScoringConcurrency   int
	CaptionLanguage      string
	TranscriptServiceURL string
}

func Load() Config {
	return Config{
		Port:                 envInt("MOODLINE_PORT", 8760),
		NatsURL:              envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:            envStr("NATS_TOKEN", ""),
		DatabaseURL:          envStr("DATABASE_URL", ""),
		RedisAddr:            envStr("REDIS_ADDR", ""),
		CaptionCacheTTL:      time.Duration(envInt("CAPTION_CACHE_TTL", 86400)) * time.Second,
		LogLevel:             envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:      envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:       envStr("MOODLINE_MODEL", "claude-sonnet-4-20250514"),
		Scorer:               envStr("MOODLINE_SCORER", ScorerLexicon),
		SlackBotToken:        envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:         envStr("SLACK_REPORTS_CHANNEL", ""),
		APIToken:             envStr("MOODLINE_API_TOKEN", ""),
		ChunkDuration:        envFloat("CHUNK_DURATION", 10),
		ScoringConcurrency:   envInt("SCORING_CONCURRENCY", 4),
		CaptionLanguage:      envStr("CAPTION_LANGUAGE", "en"),
		TranscriptServiceURL: envStr("TRANSCRIPT_SERVICE_URL", ""),
	}
}

// Validate reports settings that would make the pipeline unusable.
func (c Config) Validate() error {
	var errs []error
	if c.ChunkDuration <= 0 || math.IsInf(c.ChunkDuration, 0) || math.IsNaN(c.ChunkDuration) {
		errs = append(errs, fmt.Errorf("CHUNK_DURATION must be a positive number, got %v", c.ChunkDuration))
	}
	switch c.Scorer {
	case ScorerLexicon:
	case ScorerLLM:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when MOODLINE_SCORER=llm"))
		}
	default:
		errs = append(errs, fmt.Errorf("MOODLINE_SCORER must be %q or %q, got %q", ScorerLexicon, ScorerLLM, c.Scorer))
	}
	if c.ScoringConcurrency < 1 {
		errs = append(errs, fmt.Errorf("SCORING_CONCURRENCY must be at least 1, got %d", c.ScoringConcurrency))
	}
	return errors.Join(errs...)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
