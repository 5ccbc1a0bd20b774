package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"kuisioner/internal/apperr"
	"kuisioner/internal/cache"
	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

// ResponseService handles survey submissions from respondents
type ResponseService struct {
	responses      repository.ResponseRepo
	questions      repository.QuestionRepo
	questionnaires repository.QuestionnaireRepo
	users          repository.UserRepo
	analyticsCache cache.AnalyticsCache
}

// NewResponseService creates a new response service
func NewResponseService(
	responses repository.ResponseRepo,
	questions repository.QuestionRepo,
	questionnaires repository.QuestionnaireRepo,
	users repository.UserRepo,
	analyticsCache cache.AnalyticsCache,
) *ResponseService {
	return &ResponseService{
		responses:      responses,
		questions:      questions,
		questionnaires: questionnaires,
		users:          users,
		analyticsCache: analyticsCache,
	}
}

// Submit records one respondent's answers to a public questionnaire.
// Answers are keyed by question id; resubmitting overwrites the previous
// answer per question, keeping the one-answer-per-(respondent, question)
// invariant intact. The cached analytics bundle is invalidated afterwards.
func (s *ResponseService) Submit(ctx context.Context, questionnaireID, name, email string, answers map[string]string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("respondent email is required: %w", apperr.ErrInvalidInput)
	}

	questionnaire, err := s.questionnaires.GetByID(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if questionnaire == nil || questionnaire.Access != model.AccessPublic {
		return fmt.Errorf("questionnaire %s: %w", questionnaireID, apperr.ErrNotFound)
	}

	questions, err := s.questions.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return err
	}

	for _, q := range questions {
		if q.Required && strings.TrimSpace(answers[q.ID]) == "" {
			return fmt.Errorf("question %q is required: %w", q.Text, apperr.ErrInvalidInput)
		}
	}

	respondent, err := s.users.GetOrCreate(ctx, email, name, model.RoleRespondent)
	if err != nil {
		return err
	}

	var stored int
	for _, q := range questions {
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			continue
		}
		resp := &model.Response{
			QuestionnaireID: questionnaireID,
			QuestionID:      q.ID,
			RespondentID:    respondent.ID,
			Answer:          answer,
		}
		if err := s.responses.Upsert(ctx, resp); err != nil {
			return err
		}
		stored++
	}

	if stored == 0 {
		return fmt.Errorf("no answers submitted: %w", apperr.ErrInvalidInput)
	}

	// The cached bundle is stale now. Failure to drop it only delays
	// freshness until the TTL, so it is logged and not returned.
	if err := s.analyticsCache.Invalidate(ctx, questionnaireID); err != nil {
		log.Printf("invalidate analytics cache for %s: %v", questionnaireID, err)
	}
	return nil
}
