package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength   = 8
	MinBioLength        = 100
	MinMotivationLength = 50
)

// InstructorDetails holds the credentials an instructor applicant submits.
type InstructorDetails struct {
	Expertise    string `json:"expertise" bson:"expertise"`
	Experience   string `json:"experience" bson:"experience"`
	Organization string `json:"organization,omitempty" bson:"organization,omitempty"` // optional
	Bio          string `json:"bio" bson:"bio"`
	Motivation   string `json:"motivation" bson:"motivation"`
}

// SignupRequest is the input to a single signup attempt.
type SignupRequest struct {
	Role            string
	Email           string
	Password        string
	ConfirmPassword string
	DisplayName     string
	AgreeToTerms    bool
	Instructor      *InstructorDetails // required when Role is RoleInstructorPending
}

// Normalize trims user-entered text and lowercases the email. A missing
// display name falls back to the email's local part.
func (r *SignupRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.DisplayName == "" {
		if local, _, ok := strings.Cut(r.Email, "@"); ok {
			r.DisplayName = local
		}
	}
	if r.Instructor != nil {
		r.Instructor.Expertise = strings.TrimSpace(r.Instructor.Expertise)
		r.Instructor.Experience = strings.TrimSpace(r.Instructor.Experience)
		r.Instructor.Organization = strings.TrimSpace(r.Instructor.Organization)
		r.Instructor.Bio = strings.TrimSpace(r.Instructor.Bio)
		r.Instructor.Motivation = strings.TrimSpace(r.Instructor.Motivation)
	}
}

// Validate runs the local checks that must pass before any network call is made.
// The returned error wraps ErrValidation.
func (r *SignupRequest) Validate() error {
	switch r.Role {
	case RoleStudent, RoleInstructorPending:
	default:
		return fmt.Errorf("%w: unsupported role %q", ErrValidation, r.Role)
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if !r.AgreeToTerms {
		return fmt.Errorf("%w: you must accept the terms of service", ErrValidation)
	}

	if r.Role != RoleInstructorPending {
		return nil
	}
	d := r.Instructor
	if d == nil {
		return fmt.Errorf("%w: instructor details are required", ErrValidation)
	}
	if d.Expertise == "" || d.Experience == "" {
		return fmt.Errorf("%w: expertise and experience are required", ErrValidation)
	}
	if n := utf8.RuneCountInString(d.Bio); n < MinBioLength {
		return fmt.Errorf("%w: bio must be at least %d characters (got %d)", ErrValidation, MinBioLength, n)
	}
	if n := utf8.RuneCountInString(d.Motivation); n < MinMotivationLength {
		return fmt.Errorf("%w: motivation must be at least %d characters (got %d)", ErrValidation, MinMotivationLength, n)
	}
	return nil
}
