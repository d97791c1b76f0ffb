package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

var segmentColumns = []string{"analysis_id", "seq", "start_s", "end_s", "text", "score", "comparative", "positive", "negative", "neutral"}

// SaveAnalysis writes an analysis header and its segments in one transaction.
func (s *Store) SaveAnalysis(ctx context.Context, r *analysis.Result) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO analyses (id, video_id, video_title, video_duration, thumbnail_url, chunk_duration, scorer,
			overall_score, overall_comparative, overall_label, segment_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.VideoID, r.VideoTitle, r.VideoDuration, r.ThumbnailURL, r.ChunkDuration, r.Scorer,
		r.OverallSentiment.Score, r.OverallSentiment.Comparative, string(r.OverallSentiment.Label),
		len(r.Segments), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	rows := make([][]any, len(r.Segments))
	for i, seg := range r.Segments {
		rows[i] = []any{
			r.ID, seg.ID, seg.Start, seg.End, seg.Text,
			seg.Sentiment.Score, seg.Sentiment.Comparative,
			seg.Sentiment.Positive, seg.Sentiment.Negative, seg.Sentiment.Neutral,
		}
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"analysis_segments"}, segmentColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy segments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetAnalysis loads an analysis with its segments. Display fields (label,
// intensity, color, top segments) are derived again from the stored scores.
func (s *Store) GetAnalysis(ctx context.Context, id uuid.UUID) (*analysis.Result, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, video_id, video_title, video_duration, thumbnail_url, chunk_duration, scorer,
			overall_score, overall_comparative, overall_label, created_at
		FROM analyses WHERE id = $1`, id)

	var (
		r     analysis.Result
		label string
	)
	err := row.Scan(&r.ID, &r.VideoID, &r.VideoTitle, &r.VideoDuration, &r.ThumbnailURL, &r.ChunkDuration, &r.Scorer,
		&r.OverallSentiment.Score, &r.OverallSentiment.Comparative, &label, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: analysis %s", analysis.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	r.OverallSentiment.Label = sentiment.Label(label)

	segs, err := s.segments(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Segments = segs
	top, bottom := sentiment.TopSegments(segs, analysis.TopN)
	r.TopPositive = orEmpty(top)
	r.TopNegative = orEmpty(bottom)
	return &r, nil
}

func (s *Store) segments(ctx context.Context, id uuid.UUID) ([]sentiment.AnnotatedSegment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT seq, start_s, end_s, text, score, comparative, positive, negative, neutral
		FROM analysis_segments WHERE analysis_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	segs := []sentiment.AnnotatedSegment{}
	for rows.Next() {
		var (
			seg   transcript.Segment
			score sentiment.Score
		)
		if err := rows.Scan(&seg.ID, &seg.Start, &seg.End, &seg.Text, &score.Score, &score.Comparative,
			&score.Positive, &score.Negative, &score.Neutral); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segs = append(segs, sentiment.AnnotatedSegment{
			Segment:   seg,
			Sentiment: score,
			Label:     sentiment.LabelFor(score.Score),
			Intensity: sentiment.Intensity(score.Score),
			Color:     sentiment.Color(score.Score),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return segs, nil
}

// ListAnalysesByVideo returns analysis headers for a video, newest first.
func (s *Store) ListAnalysesByVideo(ctx context.Context, videoID string, limit int) ([]analysis.Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, video_id, video_title, segment_count, overall_score, overall_comparative, overall_label, created_at
		FROM analyses WHERE video_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, videoID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (analysis.Summary, error) {
		var (
			sum   analysis.Summary
			label string
		)
		err := row.Scan(&sum.ID, &sum.VideoID, &sum.VideoTitle, &sum.SegmentCount,
			&sum.OverallSentiment.Score, &sum.OverallSentiment.Comparative, &label, &sum.CreatedAt)
		sum.OverallSentiment.Label = sentiment.Label(label)
		return sum, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan analyses: %w", err)
	}
	if out == nil {
		out = []analysis.Summary{}
	}
	return out, nil
}

func orEmpty(s []sentiment.AnnotatedSegment) []sentiment.AnnotatedSegment {
	if s == nil {
		return []sentiment.AnnotatedSegment{}
	}
	return s
}
