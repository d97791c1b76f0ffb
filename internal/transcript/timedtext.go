package transcript

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// ParseTimedText decodes a YouTube timedtext document into raw cues.
//
// Two layouts are understood: the legacy `<transcript><text start dur>` form
// with times in seconds, and srv3 `<timedtext><body><p t d>` with times in
// milliseconds. Legacy cue text is entity-decoded a second time because YouTube
// escapes that payload before embedding it in XML; srv3 text is escaped once.
// Cues with no text are skipped.
func ParseTimedText(r io.Reader) ([]RawCue, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var (
		cues     []RawCue
		rootSeen bool
		legacy   bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rootSeen {
			if se.Name.Local != "transcript" && se.Name.Local != "timedtext" {
				return nil, fmt.Errorf("%w: unexpected root element <%s>", ErrParse, se.Name.Local)
			}
			rootSeen = true
			legacy = se.Name.Local == "transcript"
			continue
		}

		var cue RawCue
		switch se.Name.Local {
		case "text":
			cue, err = legacyCue(se)
		case "p":
			cue, err = srv3Cue(se)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		text, err := collectText(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if legacy {
			cue.Text = CleanText(text)
		} else {
			cue.Text = collapseSpace(text)
		}
		if cue.Text == "" {
			continue
		}
		cues = append(cues, cue)
	}

	if !rootSeen {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	return cues, nil
}

func legacyCue(se xml.StartElement) (RawCue, error) {
	start, err := floatAttr(se, "start", true)
	if err != nil {
		return RawCue{}, err
	}
	dur, err := floatAttr(se, "dur", false)
	if err != nil {
		return RawCue{}, err
	}
	return RawCue{Start: start, Duration: dur}, nil
}

func srv3Cue(se xml.StartElement) (RawCue, error) {
	t, err := floatAttr(se, "t", true)
	if err != nil {
		return RawCue{}, err
	}
	d, err := floatAttr(se, "d", false)
	if err != nil {
		return RawCue{}, err
	}
	return RawCue{Start: t / 1000, Duration: d / 1000}, nil
}

func floatAttr(se xml.StartElement, name string, required bool) (float64, error) {
	for _, a := range se.Attr {
		if a.Name.Local != name {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: <%s %s=%q>: %v", ErrParse, se.Name.Local, name, a.Value, err)
		}
		return v, nil
	}
	if required {
		return 0, fmt.Errorf("%w: <%s> missing %q attribute", ErrParse, se.Name.Local, name)
	}
	return 0, nil
}

// collectText reads character data up to the end of the element whose start
// tag was just consumed, including text inside nested elements.
func collectText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "br" {
				sb.WriteByte(' ')
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String(), nil
}

// CleanText decodes HTML entities and collapses whitespace runs to single
// spaces.
func CleanText(s string) string {
	return collapseSpace(html.UnescapeString(s))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
