package domain

import "time"

// ApplicationStatus is the review state of an instructor application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Signup only ever writes pending; review moves it forward exactly once.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {ApplicationApproved, ApplicationRejected},
}

// CanTransitionTo reports whether a review may move the application from s to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InstructorApplication describes an applicant's credentials and review status.
// UserID references the provider account id (and therefore the profile row).
type InstructorApplication struct {
	ID           string            `json:"id" bson:"_id"`
	UserID       string            `json:"user_id" bson:"user_id"`
	Email        string            `json:"email" bson:"email"`
	Name         string            `json:"name" bson:"name"`
	Expertise    string            `json:"expertise" bson:"expertise"`
	Experience   string            `json:"experience" bson:"experience"`
	Organization string            `json:"organization,omitempty" bson:"organization,omitempty"`
	Bio          string            `json:"bio" bson:"bio"`
	Motivation   string            `json:"motivation" bson:"motivation"`
	Status       ApplicationStatus `json:"status" bson:"status"`
	SubmittedAt  time.Time         `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy   string            `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
}
