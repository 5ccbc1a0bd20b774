package analytics

import (
	"strings"

	"github.com/montanaflynn/stats"

	"kuisioner/internal/model"
)

// Statistics computes descriptive statistics over per-answer word and
// character counts of the raw corpus. An empty corpus yields an explicit
// no-data result rather than NaN or a division error.
func Statistics(corpus []string) model.TextStatistics {
	var wordCounts, charCounts []float64
	for _, text := range corpus {
		if strings.TrimSpace(text) == "" {
			continue
		}
		wordCounts = append(wordCounts, float64(len(strings.Fields(text))))
		charCounts = append(charCounts, float64(len([]rune(text))))
	}

	if len(wordCounts) == 0 {
		return model.TextStatistics{Status: model.StatusNoData}
	}

	// These never fail on a non-empty slice.
	mean, _ := stats.Mean(wordCounts)
	median, _ := stats.Median(wordCounts)
	std, _ := stats.StandardDeviation(wordCounts)
	minW, _ := stats.Min(wordCounts)
	maxW, _ := stats.Max(wordCounts)
	meanChars, _ := stats.Mean(charCounts)

	return model.TextStatistics{
		Status:      model.StatusOK,
		Count:       len(wordCounts),
		AvgWords:    round3(mean),
		MedianWords: median,
		StdWords:    round3(std),
		AvgChars:    round3(meanChars),
		MinWords:    int(minW),
		MaxWords:    int(maxW),
	}
}
