package youtube

import (
	"testing"

	"golang.org/x/text/language"
)

func track(lang, kind string) captionTrack {
	return captionTrack{BaseURL: "https://captions/" + lang + "/" + kind, LanguageCode: lang, Kind: kind}
}

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []captionTrack
		preferred language.Tag
		want      string
	}{
		{
			name:      "manual preferred over asr",
			tracks:    []captionTrack{track("en", "asr"), track("en", "")},
			preferred: language.English,
			want:      "https://captions/en/",
		},
		{
			name:      "language beats manual",
			tracks:    []captionTrack{track("es", ""), track("en", "asr")},
			preferred: language.English,
			want:      "https://captions/en/asr",
		},
		{
			name:      "regional variant matches",
			tracks:    []captionTrack{track("de", ""), track("en-GB", "")},
			preferred: language.English,
			want:      "https://captions/en-GB/",
		},
		{
			name:      "no match falls back to first listed",
			tracks:    []captionTrack{track("fr", "asr"), track("de", "")},
			preferred: language.English,
			want:      "https://captions/fr/asr",
		},
		{
			name:      "other preferred language",
			tracks:    []captionTrack{track("en", ""), track("es", "")},
			preferred: language.Spanish,
			want:      "https://captions/es/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selectTrack(tt.tracks, tt.preferred)
			if !ok {
				t.Fatal("expected a track")
			}
			if got.BaseURL != tt.want {
				t.Errorf("selected %q, want %q", got.BaseURL, tt.want)
			}
		})
	}
}

func TestSelectTrack_Empty(t *testing.T) {
	if _, ok := selectTrack(nil, language.English); ok {
		t.Error("expected no track from an empty list")
	}
}
