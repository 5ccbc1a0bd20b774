package service

import (
	"context"
	"log"
	"time"

	"kuisioner/internal/analytics"
	"kuisioner/internal/cache"
	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

// AnalyticsParams tune one analytics invocation.
type AnalyticsParams struct {
	TopN        int
	NTopics     int
	NTopicWords int
}

// DefaultParams returns the standard analytics parameters.
func DefaultParams() AnalyticsParams {
	return AnalyticsParams{
		TopN:        analytics.DefaultTopN,
		NTopics:     analytics.DefaultTopics,
		NTopicWords: analytics.DefaultTopicWords,
	}
}

// AnalyticsService computes the analytics bundle for a questionnaire. Each
// invocation runs synchronously within its request; only bundles computed
// with default parameters are cached.
type AnalyticsService struct {
	responses repository.ResponseRepo
	questions repository.QuestionRepo
	cache     cache.AnalyticsCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(responses repository.ResponseRepo, questions repository.QuestionRepo, analyticsCache cache.AnalyticsCache) *AnalyticsService {
	return &AnalyticsService{
		responses: responses,
		questions: questions,
		cache:     analyticsCache,
	}
}

// Compute returns the analytics bundle for a questionnaire, serving the
// cached copy when the default parameters are requested.
func (s *AnalyticsService) Compute(ctx context.Context, questionnaireID string, params AnalyticsParams) (*model.AnalyticsBundle, error) {
	cacheable := params == DefaultParams()

	if cacheable {
		cached, err := s.cache.GetBundle(ctx, questionnaireID)
		if err != nil {
			// A cache failure costs a recompute, nothing more.
			log.Printf("analytics cache read for %s: %v", questionnaireID, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	corpus, err := s.FreeTextCorpus(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	keywords, err := analytics.Keywords(corpus, params.TopN)
	if err != nil {
		return nil, err
	}
	topics, err := analytics.Topics(corpus, params.NTopics, params.NTopicWords)
	if err != nil {
		return nil, err
	}

	bundle := &model.AnalyticsBundle{
		QuestionnaireID: questionnaireID,
		Topics:          topics,
		Keywords:        keywords,
		Sentiment:       analytics.Sentiment(corpus),
		TextStats:       analytics.Statistics(corpus),
		ComputedAt:      time.Now(),
	}

	if cacheable {
		if err := s.cache.SetBundle(ctx, bundle); err != nil {
			log.Printf("analytics cache write for %s: %v", questionnaireID, err)
		}
	}
	return bundle, nil
}

// FreeTextCorpus collects the raw free-text answers of one questionnaire in
// submission order. Choice and rating answers never enter the text
// analytics. The repository's uniqueness index guarantees the corpus holds
// at most one answer per (respondent, question) pair.
func (s *AnalyticsService) FreeTextCorpus(ctx context.Context, questionnaireID string) ([]string, error) {
	questions, err := s.questions.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	freeText := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.Type.IsFreeText() {
			freeText[q.ID] = true
		}
	}

	responses, err := s.responses.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	var corpus []string
	for _, r := range responses {
		if freeText[r.QuestionID] && r.HasAnswer() {
			corpus = append(corpus, r.Answer)
		}
	}
	return corpus, nil
}
