// Package sentiment scores answer text with an embedded bilingual
// (Indonesian/English) polarity lexicon.
package sentiment

import (
	_ "embed"
	"strconv"
	"strings"

	"kuisioner/internal/analytics/textproc"
	"kuisioner/internal/model"
)

// Classification thresholds on the polarity score.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

//go:embed lexicon.txt
var lexiconRaw string

// lexicon maps terms to polarity scores in [-1, 1], built once at init.
var lexicon map[string]float64

// Negations precede the word they flip ("tidak bagus", "not good").
var negations = map[string]struct{}{
	"tidak": {},
	"bukan": {},
	"tak":   {},
	"not":   {},
	"no":    {},
	"never": {},
}

// Pre-intensifiers precede the scored word ("sangat bagus", "very good");
// post-intensifiers follow it ("buruk sekali").
var (
	intensifiersPre = map[string]struct{}{
		"sangat": {},
		"amat":   {},
		"very":   {},
		"really": {},
		"so":     {},
	}
	intensifiersPost = map[string]struct{}{
		"sekali": {},
		"banget": {},
	}
)

const intensifierBoost = 1.5

func init() {
	lexicon = parseLexicon(lexiconRaw)
}

// parseLexicon parses tab-separated "term\tscore" lines.
func parseLexicon(raw string) map[string]float64 {
	m := make(map[string]float64, 256)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || score < -1 || score > 1 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = score
	}
	return m
}

// Polarity computes the continuous polarity of text in [-1, 1]: the mean of
// matched term scores after negation flips and intensifier boosts. Text with
// no lexicon matches scores 0.
func Polarity(text string) float64 {
	tokens := textproc.Tokens(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var scored int
	for i, tok := range tokens {
		score, ok := lexicon[tok]
		if !ok {
			continue
		}

		if i > 0 {
			if _, neg := negations[tokens[i-1]]; neg {
				score = -score
			} else if _, boost := intensifiersPre[tokens[i-1]]; boost {
				score *= intensifierBoost
			}
		}
		if i+1 < len(tokens) {
			if _, boost := intensifiersPost[tokens[i+1]]; boost {
				score *= intensifierBoost
			}
		}

		sum += score
		scored++
	}

	if scored == 0 {
		return 0
	}
	return clamp(sum/float64(scored), -1, 1)
}

// LabelFor applies the fixed thresholds to a polarity score.
func LabelFor(polarity float64) model.SentimentLabel {
	switch {
	case polarity > PositiveThreshold:
		return model.SentimentPositive
	case polarity < NegativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
