package sentiment

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

// Options controls how Annotate drives the scorer.
type Options struct {
	// Concurrency bounds in-flight scorer calls. Values below 1 mean sequential.
	Concurrency int
}

// Annotate scores every segment and summarises the result. Output order
// matches input order regardless of Concurrency. The first scorer error aborts
// the whole call and no partial annotations are returned.
func Annotate(ctx context.Context, segments []transcript.Segment, scorer Scorer, opts Options) ([]AnnotatedSegment, Overall, error) {
	annotated := make([]AnnotatedSegment, len(segments))

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, err := scorer.Analyze(gctx, seg.Text)
			if err != nil {
				return fmt.Errorf("%w: segment %d: %w", ErrScoring, seg.ID, err)
			}
			annotated[i] = annotateSegment(seg, score)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Overall{}, err
	}

	return annotated, Summarize(annotated), nil
}

func annotateSegment(seg transcript.Segment, score Score) AnnotatedSegment {
	score.Positive = nonNil(score.Positive)
	score.Negative = nonNil(score.Negative)
	score.Neutral = nonNil(score.Neutral)
	return AnnotatedSegment{
		Segment:   seg,
		Sentiment: score,
		Label:     LabelFor(score.Score),
		Intensity: Intensity(score.Score),
		Color:     Color(score.Score),
	}
}

// Summarize sums segment scores and averages their comparatives. An empty
// input yields a zero, neutral summary.
func Summarize(segments []AnnotatedSegment) Overall {
	var (
		total int
		comp  float64
	)
	for _, s := range segments {
		total += s.Sentiment.Score
		comp += s.Sentiment.Comparative
	}
	if len(segments) > 0 {
		comp /= float64(len(segments))
	}
	return Overall{Score: total, Comparative: comp, Label: LabelFor(total)}
}

// TopSegments returns up to n of the most positive and most negative segments.
// Ties keep transcript order.
func TopSegments(segments []AnnotatedSegment, n int) (positive, negative []AnnotatedSegment) {
	if n <= 0 {
		return nil, nil
	}
	for _, s := range segments {
		switch {
		case s.Sentiment.Score > 0:
			positive = append(positive, s)
		case s.Sentiment.Score < 0:
			negative = append(negative, s)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Sentiment.Score > positive[j].Sentiment.Score
	})
	sort.SliceStable(negative, func(i, j int) bool {
		return negative[i].Sentiment.Score < negative[j].Sentiment.Score
	})
	if len(positive) > n {
		positive = positive[:n]
	}
	if len(negative) > n {
		negative = negative[:n]
	}
	return positive, negative
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
