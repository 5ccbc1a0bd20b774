// Package analytics turns a corpus of raw answer texts into topic models,
// keyword rankings, sentiment labels and descriptive statistics. Every
// computation is stateless and request-scoped; results are derived values,
// never authoritative state.
package analytics

import (
	"math"
	"strings"

	"kuisioner/internal/analytics/sentiment"
	"kuisioner/internal/model"
)

// Defaults for the analytics operations.
const (
	DefaultTopN       = 10
	DefaultTopics     = 3
	DefaultTopicWords = 5
)

// Sentiment classifies every non-blank answer in the corpus and aggregates
// label counts. Blank answers are skipped, not scored as neutral.
func Sentiment(corpus []string) model.SentimentResult {
	details := make([]model.SentimentDetail, 0, len(corpus))
	var summary model.SentimentSummary

	for _, text := range corpus {
		if strings.TrimSpace(text) == "" {
			continue
		}
		p := sentiment.Polarity(text)
		label := sentiment.LabelFor(p)
		switch label {
		case model.SentimentPositive:
			summary.Positive++
		case model.SentimentNegative:
			summary.Negative++
		default:
			summary.Neutral++
		}
		details = append(details, model.SentimentDetail{
			Text:     text,
			Label:    label,
			Polarity: round3(p),
		})
	}

	status := model.StatusOK
	if len(details) == 0 {
		status = model.StatusNoData
	}
	return model.SentimentResult{
		Status:  status,
		Summary: summary,
		Details: details,
		Total:   len(details),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
