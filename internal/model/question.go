package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeShortText    QuestionType = "short_text"
	QuestionTypeParagraph    QuestionType = "paragraph"
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
	QuestionTypeRating       QuestionType = "rating"
)

// IsFreeText reports whether answers to this type feed the text analytics.
func (t QuestionType) IsFreeText() bool {
	return t == QuestionTypeShortText || t == QuestionTypeParagraph
}

// Question belongs to one questionnaire.
type Question struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string       `json:"questionnaireId" bson:"questionnaireId"`
	Text            string       `json:"text" bson:"text"`
	Type            QuestionType `json:"type" bson:"type"`
	Options         []string     `json:"options,omitempty" bson:"options,omitempty"` // choice types only
	Required        bool         `json:"required" bson:"required"`
	Position        int          `json:"position" bson:"position"`
}
