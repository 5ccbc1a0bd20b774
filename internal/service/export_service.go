package service

import (
	"context"
	"encoding/csv"
	"io"
	"sort"

	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

// ExportService writes questionnaire responses as CSV, one row per
// respondent with one column per question.
type ExportService struct {
	responses repository.ResponseRepo
	questions repository.QuestionRepo
	users     repository.UserRepo
}

// NewExportService creates a new export service
func NewExportService(responses repository.ResponseRepo, questions repository.QuestionRepo, users repository.UserRepo) *ExportService {
	return &ExportService{
		responses: responses,
		questions: questions,
		users:     users,
	}
}

// WriteCSV streams the responses of a questionnaire to w. Columns follow
// question position; respondents appear in first-submission order. A
// questionnaire without responses yields just the header row.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, questionnaireID string) error {
	questions, err := s.questions.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return err
	}
	responses, err := s.responses.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return err
	}

	columnByQuestion := make(map[string]int, len(questions))
	header := []string{"Nama", "Email"}
	for i, q := range questions {
		columnByQuestion[q.ID] = 2 + i
		header = append(header, q.Text)
	}

	// Responses arrive sorted by submission time, so row order follows each
	// respondent's first answer.
	rowByRespondent := make(map[string][]string)
	var order []string
	for _, r := range responses {
		col, ok := columnByQuestion[r.QuestionID]
		if !ok {
			continue
		}
		row, seen := rowByRespondent[r.RespondentID]
		if !seen {
			row = make([]string, len(header))
			rowByRespondent[r.RespondentID] = row
			order = append(order, r.RespondentID)
		}
		row[col] = r.Answer
	}

	for _, respondentID := range order {
		user, err := s.users.GetByID(ctx, respondentID)
		if err != nil {
			return err
		}
		row := rowByRespondent[respondentID]
		if user != nil {
			row[0] = user.Name
			row[1] = user.Email
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, respondentID := range order {
		if err := cw.Write(rowByRespondent[respondentID]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// QuestionBreakdown tallies answers for one choice or rating question,
// ordered by count descending.
func (s *ExportService) QuestionBreakdown(ctx context.Context, questionID string) ([]model.AnswerCount, error) {
	responses, err := s.responses.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range responses {
		if r.HasAnswer() {
			counts[r.Answer]++
		}
	}

	out := make([]model.AnswerCount, 0, len(counts))
	for answer, count := range counts {
		out = append(out, model.AnswerCount{Answer: answer, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Answer < out[j].Answer
	})
	return out, nil
}
