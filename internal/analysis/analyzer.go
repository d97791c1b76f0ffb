package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

// Repository persists analyses.
type Repository interface {
	SaveAnalysis(ctx context.Context, r *Result) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Result, error)
	ListAnalysesByVideo(ctx context.Context, videoID string, limit int) ([]Summary, error)
}

// Publisher emits JSON events; satisfied by *hermes.Client.
type Publisher interface {
	Publish(subject string, data any) error
}

// Notifier announces finished analyses to humans.
type Notifier interface {
	PostAnalysisSummary(ctx context.Context, r *Result) error
}

type Options struct {
	ChunkDuration float64
	Concurrency   int
	ScorerName    string
}

// Analyzer wires a caption source and a scorer into the segment pipeline.
// Store, publisher and notifier are optional.
type Analyzer struct {
	source   youtube.CaptionSource
	details  youtube.DetailsProvider
	scorer   sentiment.Scorer
	store    Repository
	events   Publisher
	notifier Notifier
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

func New(source youtube.CaptionSource, details youtube.DetailsProvider, scorer sentiment.Scorer, opts Options, logger *slog.Logger) *Analyzer {
	if opts.ChunkDuration == 0 {
		opts.ChunkDuration = transcript.DefaultChunkDuration
	}
	return &Analyzer{
		source:  source,
		details: details,
		scorer:  scorer,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

func (a *Analyzer) WithStore(r Repository) *Analyzer {
	a.store = r
	return a
}

func (a *Analyzer) WithPublisher(p Publisher) *Analyzer {
	a.events = p
	return a
}

func (a *Analyzer) WithNotifier(n Notifier) *Analyzer {
	a.notifier = n
	return a
}

// Analyze fetches captions for the requested video, segments and scores them.
// Persistence and notification failures are logged; the result is still
// returned.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	videoID, err := req.resolve()
	if err != nil {
		return nil, err
	}
	chunk := a.chunkDuration(req)

	started := a.now()
	segments, err := a.segments(ctx, videoID, chunk)
	if err != nil {
		return nil, err
	}

	annotated, overall, err := sentiment.Annotate(ctx, segments, a.scorer, sentiment.Options{Concurrency: a.opts.Concurrency})
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}
	if annotated == nil {
		annotated = []sentiment.AnnotatedSegment{}
	}

	details := a.videoDetails(ctx, videoID)
	top, bottom := sentiment.TopSegments(annotated, TopN)

	res := &Result{
		ID:               uuid.New(),
		VideoID:          videoID,
		VideoTitle:       details.Title,
		VideoDuration:    details.Duration,
		ThumbnailURL:     details.ThumbnailURL,
		ChunkDuration:    chunk,
		Scorer:           a.opts.ScorerName,
		Segments:         annotated,
		OverallSentiment: overall,
		TopPositive:      nonNil(top),
		TopNegative:      nonNil(bottom),
		CreatedAt:        a.now().UTC(),
	}

	a.logger.Info("analysis complete",
		"analysis_id", res.ID,
		"video_id", videoID,
		"segments", len(annotated),
		"overall_score", overall.Score,
		"label", overall.Label,
		"elapsed", a.now().Sub(started).String(),
	)

	if a.store != nil {
		if err := a.store.SaveAnalysis(ctx, res); err != nil {
			a.logger.Error("failed to persist analysis", "analysis_id", res.ID, "error", err)
		}
	}
	if a.notifier != nil {
		if err := a.notifier.PostAnalysisSummary(ctx, res); err != nil {
			a.logger.Error("failed to post analysis summary", "analysis_id", res.ID, "error", err)
		}
	}

	return res, nil
}

// Transcript returns the chunked captions for a video without scoring them.
func (a *Analyzer) Transcript(ctx context.Context, req Request) (*Transcript, error) {
	videoID, err := req.resolve()
	if err != nil {
		return nil, err
	}
	chunk := a.chunkDuration(req)

	segments, err := a.segments(ctx, videoID, chunk)
	if err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []transcript.Segment{}
	}

	details := a.videoDetails(ctx, videoID)
	return &Transcript{
		VideoID:       videoID,
		VideoTitle:    details.Title,
		VideoDuration: details.Duration,
		ChunkDuration: chunk,
		Segments:      segments,
	}, nil
}

// VideoDetails resolves display metadata for a video URL or id.
func (a *Analyzer) VideoDetails(ctx context.Context, urlOrID string) (youtube.VideoDetails, error) {
	videoID, err := Request{VideoID: urlOrID}.resolve()
	if err != nil {
		return youtube.VideoDetails{}, err
	}
	if a.details == nil {
		return youtube.VideoDetails{}, fmt.Errorf("%w: no details provider for %s", ErrNotFound, videoID)
	}
	return a.details.VideoDetails(ctx, videoID)
}

// Get loads a stored analysis.
func (a *Analyzer) Get(ctx context.Context, id uuid.UUID) (*Result, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.GetAnalysis(ctx, id)
}

// History lists stored analyses of a video, newest first.
func (a *Analyzer) History(ctx context.Context, urlOrID string, limit int) ([]Summary, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	videoID, err := Request{VideoID: urlOrID}.resolve()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return a.store.ListAnalysesByVideo(ctx, videoID, limit)
}

func (a *Analyzer) chunkDuration(req Request) float64 {
	if req.ChunkDuration != nil {
		return *req.ChunkDuration
	}
	return a.opts.ChunkDuration
}

// segments is the pure core: raw cues to normalized cues to chunks.
func (a *Analyzer) segments(ctx context.Context, videoID string, chunk float64) ([]transcript.Segment, error) {
	raw, err := a.source.FetchRawCues(ctx, videoID)
	if err != nil {
		return nil, err
	}

	cues, err := transcript.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}

	segments, err := transcript.Aggregate(cues, chunk)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}

	a.logger.Debug("captions segmented",
		"video_id", videoID,
		"raw_cues", len(raw),
		"cues", len(cues),
		"segments", len(segments),
	)
	return segments, nil
}

func (a *Analyzer) videoDetails(ctx context.Context, videoID string) youtube.VideoDetails {
	fallback := youtube.VideoDetails{ID: videoID, Title: "Unknown Title"}
	if a.details == nil {
		return fallback
	}
	d, err := a.details.VideoDetails(ctx, videoID)
	if err != nil {
		a.logger.Warn("video details unavailable", "video_id", videoID, "error", err)
		return fallback
	}
	return d
}

func nonNil(s []sentiment.AnnotatedSegment) []sentiment.AnnotatedSegment {
	if s == nil {
		return []sentiment.AnnotatedSegment{}
	}
	return s
}
