package domain

import "time"

// OrphanedAccount is an identity-provider account whose profile could not be
// created during signup. The reconciliation sweep retries it until it converges.
type OrphanedAccount struct {
	AccountID   string    `json:"account_id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	Role        string    `json:"role" bson:"role"`
	Reason      string    `json:"reason" bson:"reason"`
	Attempts    int       `json:"attempts" bson:"attempts"`
	FirstSeen   time.Time `json:"first_seen" bson:"first_seen"`
	LastAttempt time.Time `json:"last_attempt" bson:"last_attempt"`

	// Instructor is set for instructor applicants so the sweep can file
	// the application once the profile exists.
	Instructor *InstructorDetails `json:"instructor,omitempty" bson:"instructor,omitempty"`
}
