package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"kuisioner/internal/analytics/textproc"
	"kuisioner/internal/model"
	"kuisioner/internal/render"
	"kuisioner/internal/repository"
)

const (
	maxDistributionBars = 12
	maxPieSlices        = 8
	maxFrequentWords    = 15
	maxCloudWords       = 60
	maxContributors     = 10
	qrSize              = 512
)

// ReportService renders the chart artifacts for a questionnaire. File names
// are questionnaire-scoped, so concurrent reports for different
// questionnaires never collide; two racing reports for the same one
// overwrite each other with identical content.
type ReportService struct {
	responses     repository.ResponseRepo
	questions     repository.QuestionRepo
	users         repository.UserRepo
	analytics     *AnalyticsService
	renderer      *render.Renderer
	staticDir     string
	publicBaseURL string
}

// NewReportService creates a new report service
func NewReportService(
	responses repository.ResponseRepo,
	questions repository.QuestionRepo,
	users repository.UserRepo,
	analyticsSvc *AnalyticsService,
	renderer *render.Renderer,
	staticDir, publicBaseURL string,
) *ReportService {
	return &ReportService{
		responses:     responses,
		questions:     questions,
		users:         users,
		analytics:     analyticsSvc,
		renderer:      renderer,
		staticDir:     staticDir,
		publicBaseURL: publicBaseURL,
	}
}

// Generate renders every chart kind for the questionnaire and returns their
// public URLs. Empty data renders placeholders, never errors.
func (s *ReportService) Generate(ctx context.Context, questionnaireID string) (*model.Report, error) {
	questions, err := s.questions.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responses.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	bundle, err := s.analytics.Compute(ctx, questionnaireID, DefaultParams())
	if err != nil {
		return nil, err
	}

	questionByID := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	var (
		corpus     []string
		wordCounts []float64
	)
	for _, r := range responses {
		q := questionByID[r.QuestionID]
		if q == nil || !q.Type.IsFreeText() || !r.HasAnswer() {
			continue
		}
		corpus = append(corpus, r.Answer)
		wordCounts = append(wordCounts, float64(len(strings.Fields(r.Answer))))
	}

	tokenFreq := tokenFrequencies(corpus)

	report := &model.Report{QuestionnaireID: questionnaireID, GeneratedAt: time.Now()}
	add := func(kind, file string) {
		report.Artifacts = append(report.Artifacts, model.ReportArtifact{
			Kind: kind,
			URL:  "/static/charts/" + file,
		})
	}
	path := func(file string) string {
		return filepath.Join(s.staticDir, "charts", file)
	}

	distFile := fmt.Sprintf("chart_%s.png", questionnaireID)
	if err := s.renderer.DistributionBar(answerDistribution(questions, responses), path(distFile)); err != nil {
		return nil, err
	}
	add("distribution", distFile)

	pieFile := fmt.Sprintf("pie_%s.png", questionnaireID)
	if err := s.renderer.AnswerSharePie(choiceShares(questions, responses), path(pieFile)); err != nil {
		return nil, err
	}
	add("pie", pieFile)

	cloudFile := fmt.Sprintf("wc_%s.png", questionnaireID)
	if err := s.renderer.WordCloud(topFrequencies(tokenFreq, maxCloudWords), path(cloudFile)); err != nil {
		return nil, err
	}
	add("wordcloud", cloudFile)

	sentFile := fmt.Sprintf("sentiment_%s.png", questionnaireID)
	sentDonutFile := fmt.Sprintf("sentiment_donut_%s.png", questionnaireID)
	if err := s.renderer.SentimentCharts(bundle.Sentiment.Summary, path(sentFile), path(sentDonutFile)); err != nil {
		return nil, err
	}
	add("sentiment_bar", sentFile)
	add("sentiment_donut", sentDonutFile)

	freqFile := fmt.Sprintf("word_freq_%s.png", questionnaireID)
	if err := s.renderer.WordFrequency(rankedValues(tokenFreq, maxFrequentWords), path(freqFile)); err != nil {
		return nil, err
	}
	add("word_frequency", freqFile)

	lengthFile := fmt.Sprintf("response_length_%s.png", questionnaireID)
	if err := s.renderer.ResponseLength(wordCounts, path(lengthFile)); err != nil {
		return nil, err
	}
	add("response_length", lengthFile)

	contribFile := fmt.Sprintf("contributors_%s.png", questionnaireID)
	contributors, err := s.topContributors(ctx, responses)
	if err != nil {
		return nil, err
	}
	if err := s.renderer.TopContributors(contributors, path(contribFile)); err != nil {
		return nil, err
	}
	add("top_contributors", contribFile)

	kwFile := fmt.Sprintf("keyword_chart_%s.png", questionnaireID)
	if err := s.renderer.KeywordBar(keywordValues(bundle.Keywords), path(kwFile)); err != nil {
		return nil, err
	}
	add("keywords", kwFile)

	dashFile := fmt.Sprintf("stats_dashboard_%s.png", questionnaireID)
	if err := s.renderer.StatsDashboard(*bundle, wordCounts, path(dashFile)); err != nil {
		return nil, err
	}
	add("dashboard", dashFile)

	return report, nil
}

// ShareQR encodes the public response link as a PNG QR code.
func (s *ReportService) ShareQR(questionnaireID string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/surveys/%s", s.publicBaseURL, questionnaireID)
	return qrcode.Encode(url, qrcode.Medium, qrSize)
}

// answerDistribution counts "question - answer" pairs for choice and rating
// questions, highest first.
func answerDistribution(questions []*model.Question, responses []*model.Response) []render.LabeledValue {
	questionByID := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	counts := make(map[string]int)
	for _, r := range responses {
		q := questionByID[r.QuestionID]
		if q == nil || q.Type.IsFreeText() || !r.HasAnswer() {
			continue
		}
		counts[fmt.Sprintf("%s - %s", truncate(q.Text, 40), truncate(r.Answer, 20))]++
	}
	return rankedCounts(counts, maxDistributionBars)
}

// choiceShares counts answers across single-choice questions.
func choiceShares(questions []*model.Question, responses []*model.Response) []render.LabeledValue {
	single := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.Type == model.QuestionTypeSingleChoice {
			single[q.ID] = true
		}
	}

	counts := make(map[string]int)
	for _, r := range responses {
		if single[r.QuestionID] && r.HasAnswer() {
			counts[truncate(r.Answer, 30)]++
		}
	}
	return rankedCounts(counts, maxPieSlices)
}

func (s *ReportService) topContributors(ctx context.Context, responses []*model.Response) ([]render.LabeledValue, error) {
	counts := make(map[string]int)
	for _, r := range responses {
		counts[r.RespondentID]++
	}

	ranked := rankedCounts(counts, maxContributors)
	for i, lv := range ranked {
		user, err := s.users.GetByID(ctx, lv.Label)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if user.Name != "" {
				ranked[i].Label = user.Name
			} else {
				ranked[i].Label = user.Email
			}
		}
	}
	return ranked, nil
}

func tokenFrequencies(corpus []string) map[string]int {
	freq := make(map[string]int)
	for _, text := range corpus {
		for _, tok := range textproc.ContentTokens(text) {
			freq[tok]++
		}
	}
	return freq
}

func topFrequencies(freq map[string]int, limit int) map[string]int {
	if len(freq) <= limit {
		return freq
	}
	out := make(map[string]int, limit)
	for _, lv := range rankedCounts(freq, limit) {
		out[lv.Label] = int(lv.Value)
	}
	return out
}

func keywordValues(res model.KeywordsResult) []render.LabeledValue {
	out := make([]render.LabeledValue, 0, len(res.Keywords))
	for _, kw := range res.Keywords {
		out = append(out, render.LabeledValue{Label: kw.Word, Value: kw.Score})
	}
	return out
}

// rankedCounts sorts a count map descending, label ascending on ties, and
// keeps the top limit entries.
func rankedCounts(counts map[string]int, limit int) []render.LabeledValue {
	out := make([]render.LabeledValue, 0, len(counts))
	for label, count := range counts {
		out = append(out, render.LabeledValue{Label: label, Value: float64(count)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rankedValues(freq map[string]int, limit int) []render.LabeledValue {
	return rankedCounts(freq, limit)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
