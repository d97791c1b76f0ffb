package youtube

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

// FileSource reads cues from a local caption file, SRT or timedtext XML by
// extension. The video id is ignored.
type FileSource struct {
	Path string
}

// FetchRawCues implements CaptionSource.
func (f FileSource) FetchRawCues(_ context.Context, _ string) ([]transcript.RawCue, error) {
	fh, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrCaptionsUnavailable, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open caption file: %w", err)
	}
	defer fh.Close()

	var cues []transcript.RawCue
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".srt":
		cues, err = transcript.ParseSRT(fh)
	default:
		cues, err = transcript.ParseTimedText(fh)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
	}
	return cues, nil
}
