package domain

import "time"

const (
	RoleStudent           = "student"
	RoleInstructorPending = "instructor_pending"
	RoleInstructor        = "instructor"
	RoleAdmin             = "admin"
)

// AccountRecord is what the identity provider hands back after a successful signup.
// The provider owns it; the platform only ever reads AccountID.
type AccountRecord struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// ProfileRecord is the platform-side profile row. ID is the provider account id
// and doubles as the conflict key for upserts.
type ProfileRecord struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"full_name" bson:"full_name"`
	Role        string    `json:"role" bson:"role"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
