package model

import "time"

// Status tags an analytics result so callers can branch on empty states
// instead of matching error strings.
type Status string

const (
	StatusOK               Status = "ok"
	StatusNoData           Status = "no_data"
	StatusInsufficientData Status = "insufficient_data"
)

// Topic is one latent topic from the LDA decomposition. Words and Weights
// are parallel, sorted by descending weight. Topic ids are positional per
// invocation; they carry no identity across runs on changed data.
type Topic struct {
	ID      int       `json:"id"`
	Words   []string  `json:"words"`
	Weights []float64 `json:"weights"`
	Share   float64   `json:"share"` // fraction of answers with this as dominant topic
}

// TopicsResult is the topic model output for one corpus.
type TopicsResult struct {
	Status Status  `json:"status"`
	Topics []Topic `json:"topics,omitempty"`
}

// Keyword is a term with its summed TF-IDF score across the corpus.
type Keyword struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// KeywordsResult is the keyword extraction output for one corpus.
type KeywordsResult struct {
	Status   Status    `json:"status"`
	Keywords []Keyword `json:"keywords"`
}

// SentimentLabel classifies one answer's polarity.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentDetail is the per-answer classification.
type SentimentDetail struct {
	Text     string         `json:"text"`
	Label    SentimentLabel `json:"label"`
	Polarity float64        `json:"polarity"` // rounded to 3 decimals
}

// SentimentSummary counts answers by label.
type SentimentSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentResult aggregates sentiment over one corpus. Total counts scored
// answers only; blank answers are skipped, not scored as neutral.
type SentimentResult struct {
	Status  Status            `json:"status"`
	Summary SentimentSummary  `json:"summary"`
	Details []SentimentDetail `json:"details,omitempty"`
	Total   int               `json:"total"`
}

// TextStatistics are descriptive statistics over per-answer word and
// character counts of the raw (unprocessed) corpus.
type TextStatistics struct {
	Status      Status  `json:"status"`
	Count       int     `json:"count"`
	AvgWords    float64 `json:"avgWords"`
	MedianWords float64 `json:"medianWords"`
	StdWords    float64 `json:"stdWords"`
	AvgChars    float64 `json:"avgChars"`
	MinWords    int     `json:"minWords"`
	MaxWords    int     `json:"maxWords"`
}

// AnalyticsBundle is the full analytics output for one questionnaire at one
// moment. Derived and recomputed on demand; cached, never authoritative.
type AnalyticsBundle struct {
	QuestionnaireID string          `json:"questionnaireId"`
	Topics          TopicsResult    `json:"topics"`
	Keywords        KeywordsResult  `json:"keywords"`
	Sentiment       SentimentResult `json:"sentiment"`
	TextStats       TextStatistics  `json:"textStats"`
	ComputedAt      time.Time       `json:"computedAt"`
}

// AnswerCount is one answer option with its tally.
type AnswerCount struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

// ReportArtifact is one rendered chart image.
type ReportArtifact struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Report is the set of rendered artifacts for one questionnaire.
type Report struct {
	QuestionnaireID string           `json:"questionnaireId"`
	Artifacts       []ReportArtifact `json:"artifacts"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}
