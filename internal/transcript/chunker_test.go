package transcript

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestAggregate_FlushesWhenSpanExceedsTarget(t *testing.T) {
	cues := mustNormalize(t, []RawCue{
		{Start: 0, Duration: 5, Text: "a"},
		{Start: 5, Duration: 4, Text: "b"},
		{Start: 9, Duration: 3, Text: "c"},
	})

	segments, err := Aggregate(cues, DefaultChunkDuration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Segment{
		{ID: 0, Start: 0, End: 9, Text: "a b"},
		{ID: 1, Start: 9, End: 12, Text: "c"},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("Aggregate = %+v, want %+v", segments, want)
	}
}

func TestAggregate_LongCueStandsAlone(t *testing.T) {
	segments, err := Aggregate([]Cue{{Start: 0, End: 15, Text: "long"}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Segment{{ID: 0, Start: 0, End: 15, Text: "long"}}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("Aggregate = %+v, want %+v", segments, want)
	}
}

func TestAggregate_LongCueFlushesOpenChunk(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 0, End: 2, Text: "intro"},
		{Start: 2, End: 3, Text: "more"},
		{Start: 3, End: 20, Text: "monologue"},
		{Start: 20, End: 21, Text: "outro"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Segment{
		{ID: 0, Start: 0, End: 3, Text: "intro more"},
		{ID: 1, Start: 3, End: 20, Text: "monologue"},
		{ID: 2, Start: 20, End: 21, Text: "outro"},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("Aggregate = %+v, want %+v", segments, want)
	}
}

func TestAggregate_MergesUpToExactTarget(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 0, End: 4, Text: "a"},
		{Start: 4, End: 10, Text: "b"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "a b" || segments[0].End != 10 {
		t.Errorf("expected one merged segment ending at 10, got %+v", segments)
	}
}

func TestAggregate_GapsCountTowardsSpan(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 0, End: 1, Text: "a"},
		{Start: 9, End: 11, Text: "b"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", segments)
	}
}

func TestAggregate_KeepsDuplicatedTextFromClipping(t *testing.T) {
	cues := mustNormalize(t, []RawCue{
		{Start: 0, Duration: 3, Text: "so this is"},
		{Start: 2, Duration: 3, Text: "this is great"},
	})
	segments, err := Aggregate(cues, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "so this is this is great" {
		t.Errorf("unexpected segments %+v", segments)
	}
}

func TestAggregate_ZeroLengthChunkTextMovesForward(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 0, End: 2, Text: "a"},
		{Start: 30, End: 30, Text: "blip"},
		{Start: 45, End: 47, Text: "b"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", segments)
	}
	if segments[1].ID != 1 || segments[1].Text != "blip b" || segments[1].Start != 45 {
		t.Errorf("expected carried text and contiguous ids, got %+v", segments[1])
	}
}

func TestAggregate_ZeroLengthChunkBeforeFirstSegment(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 5, End: 5, Text: "wow"},
		{Start: 8, End: 17, Text: "next"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Segment{{ID: 0, Start: 8, End: 17, Text: "wow next"}}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %+v, want %+v", segments, want)
	}
}

func TestAggregate_TrailingZeroLengthChunk(t *testing.T) {
	segments, err := Aggregate([]Cue{
		{Start: 0, End: 2, Text: "a"},
		{Start: 30, End: 30, Text: "bye"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "a bye" || segments[0].End != 2 {
		t.Errorf("expected trailing text on the last segment, got %+v", segments)
	}

	only, err := Aggregate([]Cue{{Start: 3, End: 3, Text: "blip"}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only) != 0 {
		t.Errorf("expected no segments for zero-length input, got %+v", only)
	}
}

func TestAggregate_Empty(t *testing.T) {
	segments, err := Aggregate(nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected no segments, got %d", len(segments))
	}
}

func TestAggregate_RejectsBadTarget(t *testing.T) {
	for _, target := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := Aggregate([]Cue{{Start: 0, End: 1, Text: "a"}}, target)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("target %v: expected ErrInvalidConfig, got %v", target, err)
		}
	}
}

func TestAggregate_RejectsOverlappingInput(t *testing.T) {
	_, err := Aggregate([]Cue{
		{Start: 0, End: 5, Text: "a"},
		{Start: 4, End: 6, Text: "b"},
	}, 10)
	if !errors.Is(err, ErrInvalidCue) {
		t.Errorf("expected ErrInvalidCue, got %v", err)
	}
}

func TestAggregate_Properties(t *testing.T) {
	raw := make([]RawCue, 0, 60)
	for i := 0; i < 60; i++ {
		dur := 1.5 + float64(i%5)
		if i%17 == 0 {
			dur = 14
		}
		raw = append(raw, RawCue{Start: float64(i) * 2.25, Duration: dur, Text: "w"})
	}
	cues := mustNormalize(t, raw)

	const target = 10.0
	segments, err := Aggregate(cues, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("expected segments")
	}

	for i, s := range segments {
		if s.ID != i {
			t.Errorf("segment %d has id %d", i, s.ID)
		}
		if s.Start >= s.End {
			t.Errorf("segment %d has empty span %+v", i, s)
		}
		if i > 0 && segments[i-1].End > s.Start {
			t.Errorf("segments %d and %d overlap", i-1, i)
		}
		if s.Duration() > target && !matchesSingleCue(cues, s) {
			t.Errorf("segment %+v exceeds target without being a single long cue", s)
		}
	}
}

func TestStep_IsPure(t *testing.T) {
	state := openChunk(Cue{Start: 0, End: 3, Text: "a"})
	next, emitted := step(state, Cue{Start: 3, End: 5, Text: "b"}, 10)

	if len(emitted) != 0 {
		t.Errorf("expected no emission, got %+v", emitted)
	}
	if state.text != "a" || state.end != 3 {
		t.Errorf("input state mutated: %+v", state)
	}
	if next.text != "a b" || next.start != 0 || next.end != 5 {
		t.Errorf("unexpected next state %+v", next)
	}
}

func matchesSingleCue(cues []Cue, s Segment) bool {
	for _, c := range cues {
		if c.Start == s.Start && c.End == s.End && c.Text == s.Text {
			return true
		}
	}
	return false
}

func mustNormalize(t *testing.T, raw []RawCue) []Cue {
	t.Helper()
	cues, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cues
}
