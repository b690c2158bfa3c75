package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// SignupService drives Guard -> AccountCreator -> ProfileReconciler ->
// ApplicationWriter for a single attempt. Control only moves forward; the
// only retries are inside the reconciler.
type SignupService struct {
	guard        *Guard
	accounts     *AccountCreator
	profiles     *ProfileReconciler
	applications *ApplicationWriter
	orphans      ports.OrphanLedger
	remediation  Remediation
	now          Clock
	log          zerolog.Logger
}

// SignupDeps groups the collaborators of a SignupService. Orphans may be nil.
type SignupDeps struct {
	Guard        *Guard
	Accounts     *AccountCreator
	Profiles     *ProfileReconciler
	Applications *ApplicationWriter
	Orphans      ports.OrphanLedger
	Remediation  Remediation
}

func NewSignupService(deps SignupDeps, log zerolog.Logger) *SignupService {
	return &SignupService{
		guard:        deps.Guard,
		accounts:     deps.Accounts,
		profiles:     deps.Profiles,
		applications: deps.Applications,
		orphans:      deps.Orphans,
		remediation:  deps.Remediation,
		now:          time.Now,
		log:          log,
	}
}

// Submit runs one signup attempt for the client identified by clientKey.
// If ctx is cancelled mid-flight, late results are discarded and ctx.Err()
// is returned instead of an outcome.
func (s *SignupService) Submit(ctx context.Context, clientKey string, req domain.SignupRequest) (*domain.WorkflowOutcome, error) {
	req.Normalize()
	out := &domain.WorkflowOutcome{Role: req.Role}
	out.Enter(domain.StateIdle)

	if err := req.Validate(); err != nil {
		out.Enter(domain.StateInvalid)
		out.ErrorKind = "validation"
		out.Message = strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
		out.Err = err
		return out, nil
	}

	// 1. Guard. A broken cooldown store must not lock everyone out.
	status, err := s.guard.CheckAndMaybeBlock(ctx, clientKey)
	if err != nil {
		s.log.Warn().Err(err).Str("client", clientKey).Msg("cooldown check failed, submitting anyway")
	} else if status.Blocked {
		out.Enter(domain.StateBlocked)
		out.ErrorKind = "blocked"
		out.Message = blockedMessage(status.RemainingSeconds)
		out.RetryAfterSeconds = status.RemainingSeconds
		out.Err = domain.ErrCooldownActive
		return out, nil
	}

	// 2. Account.
	out.Enter(domain.StateSubmitting)
	acct, err := s.accounts.CreateAccount(ctx, req)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		var ae *domain.AccountError
		if !errors.As(err, &ae) {
			ae = ClassifyProviderError(err)
		}
		if ae.Throttled() {
			if gerr := s.guard.Activate(ctx, clientKey, ae.CooldownSeconds); gerr != nil {
				s.log.Warn().Err(gerr).Str("client", clientKey).Msg("failed to arm cooldown")
			}
		}
		out.Enter(domain.StateAccountFailed)
		s.remediation.describeAccountError(out, ae)
		out.Err = ae
		return out, nil
	}
	out.AccountID = acct.AccountID
	out.Enter(domain.StateAccountCreated)

	// 3. Profile.
	profile, err := s.profiles.EnsureProfile(ctx, acct.AccountID, acct.Email, req.DisplayName, req.Role)
	if err != nil {
		var pe *domain.ProfileError
		if !errors.As(err, &pe) {
			pe = &domain.ProfileError{Kind: domain.ProfileCreationFailed, AccountID: acct.AccountID, Err: err}
		}
		out.OrphanRecorded = s.recordOrphan(ctx, acct, req, string(pe.Kind))
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		out.Enter(domain.StateProfileFailed)
		s.remediation.describeProfileError(out, pe)
		out.Err = pe
		return out, nil
	}
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	out.Enter(domain.StateProfileEnsured)
	s.log.Debug().Str("account_id", profile.ID).Str("role", profile.Role).Msg("profile ensured")

	// 4. Application (instructors only). Failure here leaves the account usable.
	if req.Role == domain.RoleInstructorPending {
		app, err := s.applications.SubmitApplication(ctx, acct.AccountID, ApplicationFields{
			Email:   acct.Email,
			Name:    req.DisplayName,
			Details: *req.Instructor,
		})
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			var ae *domain.ApplicationError
			if !errors.As(err, &ae) {
				ae = &domain.ApplicationError{Kind: domain.ApplicationUnknown, AccountID: acct.AccountID, Err: err}
			}
			out.Enter(domain.StateApplicationFailed)
			s.remediation.describeApplicationError(out, ae)
			out.Err = ae
			return out, nil
		}
		out.Application = app
		out.Enter(domain.StateApplicationSubmitted)
	}

	out.Enter(domain.StateCompleted)
	out.Message = completedMessage(req.Role)
	out.Redirect = signinRedirect(req.Role)
	s.log.Info().Str("account_id", acct.AccountID).Str("role", req.Role).Msg("signup completed")
	return out, nil
}

// recordOrphan notes an account left without a profile so the sweep can
// retry it. It outlives ctx: the account exists whether or not the caller stayed.
// It reports whether the ledger accepted the entry.
func (s *SignupService) recordOrphan(ctx context.Context, acct *domain.AccountRecord, req domain.SignupRequest, reason string) bool {
	if s.orphans == nil {
		return false
	}
	now := s.now().UTC()
	err := s.orphans.Record(context.WithoutCancel(ctx), &domain.OrphanedAccount{
		AccountID:   acct.AccountID,
		Email:       acct.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Reason:      reason,
		Attempts:    1,
		FirstSeen:   now,
		LastAttempt: now,
		Instructor:  req.Instructor,
	})
	if err != nil {
		s.log.Error().Err(err).Str("account_id", acct.AccountID).Msg("failed to record orphaned account")
		return false
	}
	s.log.Warn().Str("account_id", acct.AccountID).Str("reason", reason).Msg("orphaned account recorded for reconciliation")
	return true
}
