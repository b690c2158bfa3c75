package handler

import "github.com/campusly/lms-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type studentSignupRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name"        validate:"max=200"`
	AgreeToTerms    bool   `json:"agree_to_terms"   validate:"required"`
}

type instructorSignupRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name"        validate:"max=200"`
	AgreeToTerms    bool   `json:"agree_to_terms"   validate:"required"`

	Expertise    string `json:"expertise"    validate:"required"`
	Experience   string `json:"experience"   validate:"required"`
	Organization string `json:"organization"`
	Bio          string `json:"bio"          validate:"required,min=100"`
	Motivation   string `json:"motivation"   validate:"required,min=50"`
}

// signupResponse is the body of every signup response, success or failure.
type signupResponse struct {
	State             string                        `json:"state"`
	Role              string                        `json:"role"`
	AccountID         string                        `json:"account_id,omitempty"`
	Message           string                        `json:"message"`
	ErrorKind         string                        `json:"error_kind,omitempty"`
	Remediation       string                        `json:"remediation,omitempty"`
	RemediationLink   string                        `json:"remediation_link,omitempty"`
	RetryAfterSeconds int                           `json:"retry_after_seconds,omitempty"`
	Redirect          string                        `json:"redirect,omitempty"`
	Application       *domain.InstructorApplication `json:"application,omitempty"`
	Trace             []domain.WorkflowState        `json:"trace"`
}

type reviewApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type listApplicationsResponse struct {
	Data  []*domain.InstructorApplication `json:"data"`
	Total int                             `json:"total"`
}
