package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCooldownActive      = errors.New("signup cooldown active")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrApplicationNotFound = errors.New("instructor application not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("access forbidden")
)

// AccountErrorKind classifies identity-provider signup failures.
type AccountErrorKind string

const (
	AccountThrottledShort   AccountErrorKind = "throttled_short"
	AccountThrottledGeneric AccountErrorKind = "throttled_generic"
	AccountAlreadyExists    AccountErrorKind = "already_exists"
	AccountUnknown          AccountErrorKind = "unknown"
)

// AccountError is the classified result of a failed account creation.
type AccountError struct {
	Kind AccountErrorKind
	// CooldownSeconds is how long the Guard should block resubmission. Zero unless throttled.
	CooldownSeconds int
	// Message is the provider's raw text.
	Message string
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %s: %s", e.Kind, e.Message)
}

func (e *AccountError) Unwrap() error { return e.Err }

// Throttled reports whether the provider asked the caller to back off.
func (e *AccountError) Throttled() bool {
	return e.Kind == AccountThrottledShort || e.Kind == AccountThrottledGeneric
}

// ProfileErrorKind classifies profile reconciliation failures.
type ProfileErrorKind string

const (
	ProfilePermissionDenied   ProfileErrorKind = "permission_denied"
	ProfilePolicyRejected     ProfileErrorKind = "policy_rejected"
	ProfileCreationFailed     ProfileErrorKind = "creation_failed"
	ProfileVerificationFailed ProfileErrorKind = "verification_failed"
)

// ProfileError is the classified result of a failed EnsureProfile.
type ProfileError struct {
	Kind      ProfileErrorKind
	AccountID string
	// Step is the cascade step that produced Err (upsert, insert, lookup, verify).
	Step string
	Err  error
}

func (e *ProfileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("profile %s for %s at %s", e.Kind, e.AccountID, e.Step)
	}
	return fmt.Sprintf("profile %s for %s at %s: %v", e.Kind, e.AccountID, e.Step, e.Err)
}

func (e *ProfileError) Unwrap() error { return e.Err }

// NeedsConfigurationRepair is true for failures the user can only fix by
// repairing database permissions or policies.
func (e *ProfileError) NeedsConfigurationRepair() bool {
	return e.Kind == ProfilePermissionDenied || e.Kind == ProfilePolicyRejected
}

// ApplicationErrorKind classifies instructor application insert failures.
type ApplicationErrorKind string

const (
	ApplicationSchemaMissing  ApplicationErrorKind = "schema_missing"
	ApplicationSchemaMismatch ApplicationErrorKind = "schema_mismatch"
	ApplicationUnknown        ApplicationErrorKind = "unknown"
)

// ApplicationError is the classified result of a failed application insert.
type ApplicationError struct {
	Kind      ApplicationErrorKind
	AccountID string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s for %s: %v", e.Kind, e.AccountID, e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// Retryable is false for schema problems; those need an operator.
func (e *ApplicationError) Retryable() bool {
	return e.Kind == ApplicationUnknown
}
