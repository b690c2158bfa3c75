package service

import (
	"fmt"
	"net/url"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// Remediation holds the contact points failure messages point users at.
type Remediation struct {
	SupportEmail string
	// RepairURL is where operators fix database permissions and policies.
	RepairURL string
}

func (r Remediation) contactSupport() string {
	if r.SupportEmail == "" {
		return "Please contact support."
	}
	return fmt.Sprintf("Please contact support at %s.", r.SupportEmail)
}

func blockedMessage(remaining int) string {
	return fmt.Sprintf("Too many signup attempts. Please wait %d seconds before trying again.", remaining)
}

func (r Remediation) describeAccountError(out *domain.WorkflowOutcome, ae *domain.AccountError) {
	out.ErrorKind = string(ae.Kind)
	switch ae.Kind {
	case domain.AccountThrottledShort, domain.AccountThrottledGeneric:
		out.Message = fmt.Sprintf("For security purposes, please wait %d seconds before trying again.", ae.CooldownSeconds)
		out.Remediation = "If you are sure the wait is over you can clear the cooldown and retry."
		out.RetryAfterSeconds = ae.CooldownSeconds
	case domain.AccountAlreadyExists:
		out.Message = "An account with this email already exists."
		out.Remediation = "Sign in instead, or reset your password if you have forgotten it."
		out.RemediationLink = "/auth/signin"
	default:
		out.Message = "We could not create your account. Please try again."
		out.Remediation = r.contactSupport()
	}
}

func (r Remediation) describeProfileError(out *domain.WorkflowOutcome, pe *domain.ProfileError) {
	out.ErrorKind = string(pe.Kind)
	switch pe.Kind {
	case domain.ProfilePermissionDenied:
		out.Message = "Your account was created but your profile could not be saved: the database denied permission."
		out.Remediation = "An administrator needs to run the database permission repair."
		out.RemediationLink = r.RepairURL
	case domain.ProfilePolicyRejected:
		out.Message = "Your account was created but your profile was rejected by a database security policy."
		out.Remediation = "An administrator needs to repair the profile row-level security policies."
		out.RemediationLink = r.RepairURL
	case domain.ProfileVerificationFailed:
		out.Message = "Your account was created but we could not confirm your profile was saved."
		out.Remediation = r.contactSupport()
	default:
		out.Message = "Your account was created but your profile could not be set up."
		out.Remediation = r.contactSupport()
	}
}

func (r Remediation) describeApplicationError(out *domain.WorkflowOutcome, ae *domain.ApplicationError) {
	out.ErrorKind = string(ae.Kind)
	switch ae.Kind {
	case domain.ApplicationSchemaMissing, domain.ApplicationSchemaMismatch:
		out.Message = "Your account was created, but instructor applications are not configured correctly on our side."
		out.Remediation = r.contactSupport()
	default:
		out.Message = fmt.Sprintf("Your account was created, but your instructor application could not be submitted: %v", ae.Err)
		out.Remediation = "You can sign in and resubmit your application later."
	}
	out.RemediationLink = "/auth/signin"
}

func completedMessage(role string) string {
	if role == domain.RoleInstructorPending {
		return "Application submitted! Please check your email to verify your account. We will review your instructor application shortly."
	}
	return "Account created! Please check your email to verify your account, then sign in."
}

func signinRedirect(role string) string {
	v := url.Values{}
	v.Set("registered", role)
	return "/auth/signin?" + v.Encode()
}
