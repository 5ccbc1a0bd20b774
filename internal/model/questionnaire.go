package model

import "time"

// Access controls who may respond to a questionnaire.
type Access string

const (
	AccessPublic Access = "public"
	AccessClosed Access = "closed"
)

// Questionnaire is a persistent survey template created by an owner.
type Questionnaire struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Access      Access    `json:"access" bson:"access"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
