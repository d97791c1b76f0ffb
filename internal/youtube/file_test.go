package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	srt := filepath.Join(dir, "clip.SRT")
	if err := os.WriteFile(srt, []byte("1\n00:00:01,000 --> 00:00:03,500\nhello there\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	xml := filepath.Join(dir, "clip.xml")
	if err := os.WriteFile(xml, []byte(timedTextDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	cues, err := FileSource{Path: srt}.FetchRawCues(context.Background(), "")
	if err != nil {
		t.Fatalf("srt: %v", err)
	}
	if len(cues) != 1 || cues[0].Start != 1 || cues[0].Duration != 2.5 || cues[0].Text != "hello there" {
		t.Errorf("srt cues = %+v", cues)
	}

	cues, err = FileSource{Path: xml}.FetchRawCues(context.Background(), "")
	if err != nil {
		t.Fatalf("xml: %v", err)
	}
	if len(cues) != 2 {
		t.Errorf("expected 2 xml cues, got %d", len(cues))
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "absent.srt")}.FetchRawCues(context.Background(), "")
	if !errors.Is(err, ErrCaptionsUnavailable) {
		t.Errorf("expected ErrCaptionsUnavailable, got %v", err)
	}
}
