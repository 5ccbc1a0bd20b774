package textproc

import (
	_ "embed"
	"strings"
)

// The questionnaire platform serves Indonesian-language campuses first, so
// the fixed stoplist carries both Indonesian and English function words.
var (
	//go:embed stopwords_id.txt
	stopwordsIDRaw string

	//go:embed stopwords_en.txt
	stopwordsENRaw string
)

// stopset is populated in init and read-only after.
var stopset map[string]struct{}

func init() {
	stopset = make(map[string]struct{}, 256)
	for _, raw := range []string{stopwordsIDRaw, stopwordsENRaw} {
		for _, line := range strings.Split(raw, "\n") {
			w := strings.TrimSpace(line)
			if w == "" || strings.HasPrefix(w, "#") {
				continue
			}
			stopset[w] = struct{}{}
		}
	}
}

// IsStopword checks if a token is on the fixed stoplist.
func IsStopword(token string) bool {
	_, ok := stopset[token]
	return ok
}

// Stopwords returns the full stoplist. The order is unspecified.
func Stopwords() []string {
	out := make([]string, 0, len(stopset))
	for w := range stopset {
		out = append(out, w)
	}
	return out
}
