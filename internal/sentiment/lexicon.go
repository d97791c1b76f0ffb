package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// LexiconScorer is an AFINN-165 word-valence scorer. Each token found in the
// lexicon contributes its valence; a negator directly before a token flips it.
type LexiconScorer struct {
	words    map[string]int
	negators map[string]bool
}

// NewLexiconScorer returns a scorer over the built-in lexicon, with extra
// entries overriding or extending it.
func NewLexiconScorer(extra map[string]int) *LexiconScorer {
	base := afinn()
	words := make(map[string]int, len(base)+len(extra))
	for w, v := range base {
		words[w] = v
	}
	for w, v := range extra {
		words[strings.ToLower(w)] = v
	}
	neg := make(map[string]bool, len(negators))
	for _, w := range negators {
		neg[w] = true
	}
	return &LexiconScorer{words: words, negators: neg}
}

// Analyze never fails and ignores ctx.
func (l *LexiconScorer) Analyze(_ context.Context, text string) (Score, error) {
	tokens := Tokenize(text)
	out := Score{
		Positive: []string{},
		Negative: []string{},
		Neutral:  []string{},
	}

	for i, tok := range tokens {
		v, ok := l.words[tok]
		if !ok {
			continue
		}
		if i > 0 && l.negators[tokens[i-1]] {
			v = -v
		}
		out.Score += v
		switch {
		case v > 0:
			out.Positive = append(out.Positive, tok)
		case v < 0:
			out.Negative = append(out.Negative, tok)
		}
	}

	if len(tokens) > 0 {
		out.Comparative = float64(out.Score) / float64(len(tokens))
	}
	return out, nil
}

// Tokenize lower-cases text and splits it into words, keeping apostrophes and
// hyphens inside words and dropping other punctuation.
func Tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "\u2019", "'")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'-"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// WordCount is the number of tokens Tokenize would produce.
func WordCount(text string) int {
	return len(Tokenize(text))
}
