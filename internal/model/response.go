package model

import "time"

// Response is a single immutable answer to one question by one respondent.
// At most one response exists per (respondentId, questionId); the repository
// enforces this with a unique compound index and upserts on resubmission.
type Response struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string    `json:"questionnaireId" bson:"questionnaireId"`
	QuestionID      string    `json:"questionId" bson:"questionId"`
	RespondentID    string    `json:"respondentId" bson:"respondentId"`
	Answer          string    `json:"answer" bson:"answer"`
	SubmittedAt     time.Time `json:"submittedAt" bson:"submittedAt"`
}

// HasAnswer reports whether the response carries usable text.
func (r *Response) HasAnswer() bool {
	return r.Answer != ""
}
