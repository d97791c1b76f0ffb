package transcript

import (
	"fmt"
	"math"
	"sort"
)

// Normalize removes overlaps from raw caption cues.
//
// Cues are stable-sorted by start time. A cue fully covered by earlier cues is
// dropped; a partially covered cue has its start moved up to the covered end.
// A clipped cue keeps its full text, so words may repeat across neighbouring
// cues.
func Normalize(raw []RawCue) ([]Cue, error) {
	cues := make([]Cue, len(raw))
	for i, c := range raw {
		if err := validateRaw(c); err != nil {
			return nil, fmt.Errorf("cue %d: %w", i, err)
		}
		cues[i] = Cue{Start: c.Start, End: c.End(), Text: c.Text}
	}
	return normalize(cues), nil
}

// NormalizeCues applies the same overlap removal to cues that already carry
// end times. Running it on the output of Normalize returns the input unchanged.
func NormalizeCues(cues []Cue) ([]Cue, error) {
	for i, c := range cues {
		if err := validateCue(c); err != nil {
			return nil, fmt.Errorf("cue %d: %w", i, err)
		}
	}
	return normalize(cues), nil
}

func normalize(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}

	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := make([]Cue, 0, len(sorted))
	lastEnd := math.Inf(-1)

	for _, c := range sorted {
		switch {
		case c.Start >= lastEnd:
			out = append(out, c)
		case c.End <= lastEnd:
			// Fully covered by earlier cues.
		default:
			out = append(out, Cue{Start: lastEnd, End: c.End, Text: c.Text})
		}
		lastEnd = math.Max(lastEnd, c.End)
	}

	return out
}

func validateRaw(c RawCue) error {
	switch {
	case !finite(c.Start):
		return fmt.Errorf("%w: start %v is not finite", ErrInvalidCue, c.Start)
	case !finite(c.Duration):
		return fmt.Errorf("%w: duration %v is not finite", ErrInvalidCue, c.Duration)
	case c.Start < 0:
		return fmt.Errorf("%w: negative start %v", ErrInvalidCue, c.Start)
	case c.Duration < 0:
		return fmt.Errorf("%w: negative duration %v", ErrInvalidCue, c.Duration)
	case !finite(c.End()):
		return fmt.Errorf("%w: end overflows", ErrInvalidCue)
	}
	return nil
}

func validateCue(c Cue) error {
	switch {
	case !finite(c.Start) || !finite(c.End):
		return fmt.Errorf("%w: non-finite bounds [%v, %v]", ErrInvalidCue, c.Start, c.End)
	case c.Start < 0:
		return fmt.Errorf("%w: negative start %v", ErrInvalidCue, c.Start)
	case c.End < c.Start:
		return fmt.Errorf("%w: end %v before start %v", ErrInvalidCue, c.End, c.Start)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
