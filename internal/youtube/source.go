// Package youtube supplies raw caption cues and video metadata for a video id.
package youtube

import (
	"context"
	"errors"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

var (
	// ErrCaptionsUnavailable means the video exists but has no caption track.
	ErrCaptionsUnavailable = errors.New("captions unavailable")
	// ErrLookup covers network failures and videos that cannot be resolved.
	ErrLookup = errors.New("video lookup failed")
)

// CaptionSource yields the raw caption cues for a video. Cue text is already
// entity-decoded.
type CaptionSource interface {
	FetchRawCues(ctx context.Context, videoID string) ([]transcript.RawCue, error)
}

// DetailsProvider resolves display metadata for a video.
type DetailsProvider interface {
	VideoDetails(ctx context.Context, videoID string) (VideoDetails, error)
}

// VideoDetails is the metadata shown alongside an analysis.
type VideoDetails struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Duration     int    `json:"duration"` // seconds
	ThumbnailURL string `json:"thumbnailUrl"`
}
