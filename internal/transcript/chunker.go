package transcript

import (
	"fmt"
	"math"
)

// DefaultChunkDuration is the target segment length in seconds.
const DefaultChunkDuration = 10.0

// chunkState is the accumulator of the aggregation fold. The zero value has no
// open chunk.
type chunkState struct {
	open  bool
	start float64
	end   float64
	text  string
}

// span is a chunk ready to be emitted as a Segment.
type span struct {
	start, end float64
	text       string
}

func (s chunkState) flush() []span {
	if !s.open {
		return nil
	}
	return []span{{start: s.start, end: s.end, text: s.text}}
}

func openChunk(c Cue) chunkState {
	return chunkState{open: true, start: c.Start, end: c.End, text: c.Text}
}

// step folds one cue into the accumulator and returns the next state together
// with any chunks that closed as a result.
func step(state chunkState, c Cue, target float64) (chunkState, []span) {
	switch {
	case c.End-c.Start > target:
		// Long cues stand alone; they are never merged or split.
		emitted := append(state.flush(), span{start: c.Start, end: c.End, text: c.Text})
		return chunkState{}, emitted
	case !state.open:
		return openChunk(c), nil
	case c.End-state.start > target:
		return openChunk(c), state.flush()
	default:
		return chunkState{
			open:  true,
			start: state.start,
			end:   c.End,
			text:  state.text + " " + c.Text,
		}, nil
	}
}

// Aggregate merges normalized cues into segments spanning at most target
// seconds from their first cue's start. Segment ids are assigned in output
// order starting at zero.
func Aggregate(cues []Cue, target float64) ([]Segment, error) {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: chunk duration must be positive and finite, got %v", ErrInvalidConfig, target)
	}
	if err := checkNormalized(cues); err != nil {
		return nil, err
	}

	var (
		segments []Segment
		state    chunkState
		emitted  []span
		carry    string
	)
	emit := func(spans []span) {
		for _, sp := range spans {
			// A chunk built only from zero-length cues has no extent of its
			// own; its text moves into the next segment.
			if sp.end <= sp.start {
				carry = joinText(carry, sp.text)
				continue
			}
			segments = append(segments, Segment{
				ID:    len(segments),
				Start: sp.start,
				End:   sp.end,
				Text:  joinText(carry, sp.text),
			})
			carry = ""
		}
	}

	for _, c := range cues {
		state, emitted = step(state, c, target)
		emit(emitted)
	}
	emit(state.flush())

	if carry != "" && len(segments) > 0 {
		last := &segments[len(segments)-1]
		last.Text = joinText(last.Text, carry)
	}

	return segments, nil
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func checkNormalized(cues []Cue) error {
	for i, c := range cues {
		if err := validateCue(c); err != nil {
			return fmt.Errorf("cue %d: %w", i, err)
		}
		if i > 0 && cues[i-1].End > c.Start {
			return fmt.Errorf("%w: cue %d starts at %v before previous cue ends at %v",
				ErrInvalidCue, i, c.Start, cues[i-1].End)
		}
	}
	return nil
}
