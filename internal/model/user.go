package model

import "time"

// Role distinguishes questionnaire creators from plain respondents.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCreator    Role = "creator"
	RoleRespondent Role = "respondent"
)

// User is a creator or respondent. Respondents are created on first
// submission keyed by email; email is unique at the storage layer.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
