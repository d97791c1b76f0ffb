package youtube

import (
	"regexp"
	"strings"
)

var (
	videoURLPattern = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts|live)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID returns the 11-character video id from a YouTube URL, or the
// input itself when it already is a bare id. ok is false when neither matches.
func ExtractVideoID(s string) (id string, ok bool) {
	s = strings.TrimSpace(s)
	if videoIDPattern.MatchString(s) {
		return s, true
	}
	m := videoURLPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsValidVideoID reports whether s has the shape of a video id.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}
