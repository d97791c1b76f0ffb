// Package analysis runs the caption-to-sentiment pipeline for one video and
// fans the result out to storage, NATS and Slack.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	// ErrNoStore is returned by lookups when persistence is not configured.
	ErrNoStore = errors.New("persistence not configured")
)

// TopN is the number of most positive and most negative segments reported.
const TopN = 3

// Request identifies a video by URL or bare id. A nil ChunkDuration means
// the analyzer default; an explicit value must be positive.
type Request struct {
	URL           string   `json:"url,omitempty"`
	VideoID       string   `json:"videoId,omitempty"`
	ChunkDuration *float64 `json:"chunkDuration,omitempty"`
}

// resolve returns the video id named by the request.
func (r Request) resolve() (string, error) {
	if d := r.ChunkDuration; d != nil && (*d <= 0 || math.IsNaN(*d) || math.IsInf(*d, 0)) {
		return "", fmt.Errorf("%w: chunkDuration must be a positive number of seconds", ErrInvalidRequest)
	}
	in := r.VideoID
	if in == "" {
		in = r.URL
	}
	if in == "" {
		return "", fmt.Errorf("%w: url or videoId is required", ErrInvalidRequest)
	}
	id, ok := youtube.ExtractVideoID(in)
	if !ok {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidRequest, in)
	}
	return id, nil
}

// Result is a complete sentiment analysis of one video's captions.
type Result struct {
	ID               uuid.UUID                    `json:"id"`
	VideoID          string                       `json:"videoId"`
	VideoTitle       string                       `json:"videoTitle"`
	VideoDuration    int                          `json:"videoDuration"`
	ThumbnailURL     string                       `json:"thumbnailUrl,omitempty"`
	ChunkDuration    float64                      `json:"chunkDuration"`
	Scorer           string                       `json:"scorer"`
	Segments         []sentiment.AnnotatedSegment `json:"segments"`
	OverallSentiment sentiment.Overall            `json:"overallSentiment"`
	TopPositive      []sentiment.AnnotatedSegment `json:"topPositive"`
	TopNegative      []sentiment.AnnotatedSegment `json:"topNegative"`
	CreatedAt        time.Time                    `json:"createdAt"`
}

// Summary is the listing view of a stored Result.
type Summary struct {
	ID               uuid.UUID         `json:"id"`
	VideoID          string            `json:"videoId"`
	VideoTitle       string            `json:"videoTitle"`
	SegmentCount     int               `json:"segmentCount"`
	OverallSentiment sentiment.Overall `json:"overallSentiment"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Transcript is the chunked caption track without scoring.
type Transcript struct {
	VideoID       string               `json:"videoId"`
	VideoTitle    string               `json:"videoTitle"`
	VideoDuration int                  `json:"videoDuration"`
	ChunkDuration float64              `json:"chunkDuration"`
	Segments      []transcript.Segment `json:"segments"`
}

// Code classifies err into a stable machine-readable string for API and
// event consumers.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, transcript.ErrInvalidConfig):
		return "invalid_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, youtube.ErrCaptionsUnavailable):
		return "captions_unavailable"
	case errors.Is(err, youtube.ErrLookup):
		return "lookup_failed"
	case errors.Is(err, transcript.ErrParse), errors.Is(err, transcript.ErrInvalidCue):
		return "bad_captions"
	case errors.Is(err, sentiment.ErrScoring):
		return "scoring_failed"
	case errors.Is(err, ErrNoStore):
		return "no_store"
	default:
		return "internal"
	}
}
