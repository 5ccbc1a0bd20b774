package service

import (
	"context"
	"fmt"
	"strings"

	"kuisioner/internal/apperr"
	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

// QuestionnaireService handles questionnaire and question management
type QuestionnaireService struct {
	questionnaires repository.QuestionnaireRepo
	questions      repository.QuestionRepo
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(questionnaires repository.QuestionnaireRepo, questions repository.QuestionRepo) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaires: questionnaires,
		questions:      questions,
	}
}

// Create stores a new questionnaire owned by ownerID.
func (s *QuestionnaireService) Create(ctx context.Context, ownerID, title, description string, access model.Access) (*model.Questionnaire, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrInvalidInput)
	}
	if access == "" {
		access = model.AccessPublic
	}

	q := &model.Questionnaire{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Access:      access,
	}
	id, err := s.questionnaires.Create(ctx, q)
	if err != nil {
		return nil, err
	}
	q.ID = id
	return q, nil
}

// Get returns a questionnaire with its questions. The requester must own it
// unless they are an admin.
func (s *QuestionnaireService) Get(ctx context.Context, requesterID string, requesterRole model.Role, id string) (*model.Questionnaire, []*model.Question, error) {
	q, err := s.questionnaires.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, fmt.Errorf("questionnaire %s: %w", id, apperr.ErrNotFound)
	}
	if q.OwnerID != requesterID && requesterRole != model.RoleAdmin {
		return nil, nil, apperr.ErrForbidden
	}

	questions, err := s.questions.GetByQuestionnaireID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return q, questions, nil
}

// List returns the requester's questionnaires.
func (s *QuestionnaireService) List(ctx context.Context, ownerID string) ([]*model.Questionnaire, error) {
	return s.questionnaires.GetByOwnerID(ctx, ownerID)
}

// Update replaces title, description and access of an owned questionnaire.
func (s *QuestionnaireService) Update(ctx context.Context, requesterID string, requesterRole model.Role, q *model.Questionnaire) error {
	existing, _, err := s.Get(ctx, requesterID, requesterRole, q.ID)
	if err != nil {
		return err
	}

	existing.Title = q.Title
	existing.Description = q.Description
	if q.Access != "" {
		existing.Access = q.Access
	}
	return s.questionnaires.Update(ctx, existing)
}

// Delete removes an owned questionnaire.
func (s *QuestionnaireService) Delete(ctx context.Context, requesterID string, requesterRole model.Role, id string) error {
	if _, _, err := s.Get(ctx, requesterID, requesterRole, id); err != nil {
		return err
	}
	return s.questionnaires.Delete(ctx, id)
}

// AddQuestion appends a question to an owned questionnaire.
func (s *QuestionnaireService) AddQuestion(ctx context.Context, requesterID string, requesterRole model.Role, question *model.Question) (string, error) {
	if strings.TrimSpace(question.Text) == "" {
		return "", fmt.Errorf("question text is required: %w", apperr.ErrInvalidInput)
	}
	switch question.Type {
	case model.QuestionTypeShortText, model.QuestionTypeParagraph, model.QuestionTypeRating:
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultiChoice:
		if len(question.Options) < 2 {
			return "", fmt.Errorf("choice questions need at least two options: %w", apperr.ErrInvalidInput)
		}
	default:
		return "", fmt.Errorf("unknown question type %q: %w", question.Type, apperr.ErrInvalidInput)
	}

	_, existing, err := s.Get(ctx, requesterID, requesterRole, question.QuestionnaireID)
	if err != nil {
		return "", err
	}
	question.Position = len(existing) + 1

	return s.questions.Create(ctx, question)
}

// PublicForm returns the questionnaire and its questions for respondents.
// Only public questionnaires are served.
func (s *QuestionnaireService) PublicForm(ctx context.Context, id string) (*model.Questionnaire, []*model.Question, error) {
	q, err := s.questionnaires.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if q == nil || q.Access != model.AccessPublic {
		return nil, nil, fmt.Errorf("questionnaire %s: %w", id, apperr.ErrNotFound)
	}

	questions, err := s.questions.GetByQuestionnaireID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return q, questions, nil
}
