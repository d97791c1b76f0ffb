package sentiment

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// negators flip the valence of the token that follows them.
var negators = []string{
	"not", "no", "never", "don't", "dont", "doesn't", "doesnt", "didn't", "didnt",
	"isn't", "isnt", "wasn't", "wasnt", "aren't", "arent", "weren't", "werent",
	"can't", "cant", "cannot", "won't", "wont", "wouldn't", "wouldnt",
	"shouldn't", "shouldnt", "couldn't", "couldnt", "ain't", "aint", "without",
}

// afinnTSV is the AFINN-165 word list, one "word<TAB>valence" per line.
// Multi-word entries are kept but never match a single token.
//
//go:embed afinn-165.tsv
var afinnTSV string

var afinn = sync.OnceValue(func() map[string]int {
	words, err := parseLexicon(afinnTSV)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return words
})

func parseLexicon(data string) (map[string]int, error) {
	words := make(map[string]int, strings.Count(data, "\n")+1)
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, val, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab", i+1)
		}
		v, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || v < -5 || v > 5 {
			return nil, fmt.Errorf("line %d: bad valence %q", i+1, val)
		}
		words[strings.ToLower(word)] = v
	}
	return words, nil
}
