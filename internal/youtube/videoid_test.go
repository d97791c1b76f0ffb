package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"  dQw4w9WgXcQ\n", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/live/dQw4w9WgXcQ?feature=shared", "dQw4w9WgXcQ", true},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"https://youtu.be/short", "", false},
		{"not a video", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ExtractVideoID(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsValidVideoID(t *testing.T) {
	if !IsValidVideoID("a_b-c1234XY") {
		t.Error("expected 11-char id with _ and - to be valid")
	}
	for _, bad := range []string{"", "abc", "dQw4w9WgXcQQ", "dQw4w9WgXc!"} {
		if IsValidVideoID(bad) {
			t.Errorf("IsValidVideoID(%q) = true", bad)
		}
	}
}
