package sentiment

import (
	"context"
	"errors"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

// ErrScoring wraps any failure returned by a Scorer during annotation.
var ErrScoring = errors.New("sentiment scoring failed")

// Scorer computes the polarity of a piece of text. Implementations must be
// safe for concurrent use.
type Scorer interface {
	Analyze(ctx context.Context, text string) (Score, error)
}

// Score is the output of a Scorer for one piece of text.
type Score struct {
	Score       int      `json:"score"`
	Comparative float64  `json:"comparative"`
	Positive    []string `json:"positive"`
	Negative    []string `json:"negative"`
	Neutral     []string `json:"neutral"`
}

// Label is the polarity bucket of a score.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// AnnotatedSegment is a transcript segment with its sentiment attached.
type AnnotatedSegment struct {
	transcript.Segment
	Sentiment Score   `json:"sentiment"`
	Label     Label   `json:"sentimentLabel"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
}

// Overall summarises the sentiment of a whole transcript.
type Overall struct {
	Score       int     `json:"score"`
	Comparative float64 `json:"comparative"`
	Label       Label   `json:"label"`
}
