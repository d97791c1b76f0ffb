package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/moodline/internal/anthropic"
)

const llmSystemPrompt = `You are a sentiment scorer for video caption excerpts.

Score the polarity of the excerpt on an integer scale, in the style of the AFINN word list:
each clearly positive word or phrase adds +1 to +5, each clearly negative one adds -1 to -5,
and negated phrases flip sign. Neutral filler contributes nothing.

Respond with ONLY a JSON object, no prose and no code fences:
{"score": <int>, "positive": [<words>], "negative": [<words>], "neutral": [<words>]}

"positive" and "negative" list the words that contributed to the score. "neutral" lists
sentiment-bearing words you judged to be neutral in context; it may be empty.`

// Completer is the subset of the Anthropic client the LLM scorer needs.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// LLMScorer delegates scoring to a language model. The comparative score is
// computed locally from the word count so it stays comparable with
// LexiconScorer output.
type LLMScorer struct {
	llm    Completer
	logger *slog.Logger
}

func NewLLMScorer(llm Completer, logger *slog.Logger) *LLMScorer {
	return &LLMScorer{llm: llm, logger: logger}
}

type llmScore struct {
	Score    int      `json:"score"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Neutral  []string `json:"neutral"`
}

func (s *LLMScorer) Analyze(ctx context.Context, text string) (Score, error) {
	words := WordCount(text)
	if words == 0 {
		return Score{Positive: []string{}, Negative: []string{}, Neutral: []string{}}, nil
	}

	raw, err := s.llm.Complete(ctx, llmSystemPrompt, []anthropic.Message{
		{Role: "user", Content: "Excerpt:\n" + text},
	}, 512)
	if err != nil {
		return Score{}, fmt.Errorf("llm score: %w", err)
	}

	var resp llmScore
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		s.logger.Error("failed to parse score response", "error", err, "raw", raw)
		return Score{}, fmt.Errorf("parse score: %w", err)
	}

	return Score{
		Score:       resp.Score,
		Comparative: float64(resp.Score) / float64(words),
		Positive:    nonNil(resp.Positive),
		Negative:    nonNil(resp.Negative),
		Neutral:     nonNil(resp.Neutral),
	}, nil
}

// stripCodeFence tolerates models that wrap JSON in a markdown fence anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
