package transcript

import "errors"

var (
	// ErrInvalidCue is returned for malformed timing data or cues that break ordering.
	ErrInvalidCue = errors.New("invalid cue")
	// ErrInvalidConfig is returned for a non-positive or non-finite chunk duration.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrParse is returned when a caption document cannot be parsed.
	ErrParse = errors.New("parse captions")
)

// RawCue is a single timestamped caption entry as produced by a caption source.
type RawCue struct {
	Start    float64 `json:"start"`    // seconds
	Duration float64 `json:"duration"` // seconds
	Text     string  `json:"text"`
}

// End returns Start + Duration.
func (c RawCue) End() float64 {
	return c.Start + c.Duration
}

// Cue is a normalized caption cue. A normalized sequence is sorted by Start
// and no cue ends after the next one starts.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Segment is a merged run of cues used as the unit of sentiment scoring.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the segment span in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
