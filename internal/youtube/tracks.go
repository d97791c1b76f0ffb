package youtube

import (
	"sort"

	"golang.org/x/text/language"
)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

func (t captionTrack) autoGenerated() bool {
	return t.Kind == "asr"
}

// selectTrack picks the track best matching the preferred language, favouring
// human-authored tracks over auto-generated ones of the same language. With no
// usable match the first listed track wins.
func selectTrack(tracks []captionTrack, preferred language.Tag) (captionTrack, bool) {
	if len(tracks) == 0 {
		return captionTrack{}, false
	}

	ordered := make([]captionTrack, len(tracks))
	copy(ordered, tracks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[i].autoGenerated() && ordered[j].autoGenerated()
	})

	tags := make([]language.Tag, len(ordered))
	for i, t := range ordered {
		tag, err := language.Parse(t.LanguageCode)
		if err != nil {
			tag = language.Und
		}
		tags[i] = tag
	}

	_, idx, conf := language.NewMatcher(tags).Match(preferred)
	if conf == language.No {
		return tracks[0], true
	}
	return ordered[idx], true
}
