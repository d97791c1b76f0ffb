package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseSRT reads SubRip captions into raw cues. Multi-line cue text is joined
// with single spaces.
func ParseSRT(r io.Reader) ([]RawCue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cues    []RawCue
		current *RawCue
		lines   []string
		lineNo  int
	)
	flush := func() {
		if current != nil {
			current.Text = CleanText(strings.Join(lines, " "))
			if current.Text != "" {
				cues = append(cues, *current)
			}
		}
		current = nil
		lines = lines[:0]
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		switch {
		case line == "":
			flush()
		case strings.Contains(line, "-->"):
			flush()
			start, end, err := parseSRTTiming(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo, err)
			}
			current = &RawCue{Start: start, Duration: end - start}
		case current == nil:
			// Sequence number or stray text before a timing line.
		default:
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	flush()

	return cues, nil
}

func parseSRTTiming(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// Position hints may follow the end timestamp.
	endField := strings.Fields(parts[1])
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp")
	}
	end, err := parseSRTTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseSRTTimestamp parses HH:MM:SS,mmm (a '.' separator is also accepted).
func parseSRTTimestamp(s string) (float64, error) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	h, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("bad hours in %q", s)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("bad minutes in %q", s)
	}
	sec, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, fmt.Errorf("bad seconds in %q", s)
	}
	return float64(h)*3600 + float64(m)*60 + sec, nil
}
