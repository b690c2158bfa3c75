package handler

import (
	"net/http"

	"github.com/campusly/lms-platform/internal/core/domain"
)

func (r studentSignupRequest) toDomain() domain.SignupRequest {
	return domain.SignupRequest{
		Role:            domain.RoleStudent,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		DisplayName:     r.FullName,
		AgreeToTerms:    r.AgreeToTerms,
	}
}

func (r instructorSignupRequest) toDomain() domain.SignupRequest {
	return domain.SignupRequest{
		Role:            domain.RoleInstructorPending,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		DisplayName:     r.FullName,
		AgreeToTerms:    r.AgreeToTerms,
		Instructor: &domain.InstructorDetails{
			Expertise:    r.Expertise,
			Experience:   r.Experience,
			Organization: r.Organization,
			Bio:          r.Bio,
			Motivation:   r.Motivation,
		},
	}
}

func toSignupResponse(out *domain.WorkflowOutcome) signupResponse {
	return signupResponse{
		State:             string(out.State),
		Role:              out.Role,
		AccountID:         out.AccountID,
		Message:           out.Message,
		ErrorKind:         out.ErrorKind,
		Remediation:       out.Remediation,
		RemediationLink:   out.RemediationLink,
		RetryAfterSeconds: out.RetryAfterSeconds,
		Redirect:          out.Redirect,
		Application:       out.Application,
		Trace:             out.Trace,
	}
}

// outcomeStatus maps a terminal workflow state to its HTTP status.
func outcomeStatus(out *domain.WorkflowOutcome) int {
	switch out.State {
	case domain.StateCompleted:
		return http.StatusCreated
	case domain.StateApplicationFailed:
		return http.StatusAccepted
	case domain.StateInvalid:
		return http.StatusUnprocessableEntity
	case domain.StateBlocked:
		return http.StatusTooManyRequests
	case domain.StateAccountFailed:
		switch domain.AccountErrorKind(out.ErrorKind) {
		case domain.AccountThrottledShort, domain.AccountThrottledGeneric:
			return http.StatusTooManyRequests
		case domain.AccountAlreadyExists:
			return http.StatusConflict
		default:
			return http.StatusBadGateway
		}
	case domain.StateProfileFailed:
		switch domain.ProfileErrorKind(out.ErrorKind) {
		case domain.ProfilePermissionDenied, domain.ProfilePolicyRejected:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
