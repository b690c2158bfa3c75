package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// OrphanService retries the profile step for accounts that signup left
// without one. EnsureProfile is idempotent, so a retry of an account that
// has since converged is harmless. Instructor applicants also get their
// application filed once the profile exists.
type OrphanService struct {
	ledger       ports.OrphanLedger
	profiles     *ProfileReconciler
	applications *ApplicationWriter
	now          Clock
	log          zerolog.Logger
}

// NewOrphanService wires the sweep. applications may be nil, in which case
// instructor orphans only get their profile.
func NewOrphanService(ledger ports.OrphanLedger, profiles *ProfileReconciler, applications *ApplicationWriter, log zerolog.Logger) *OrphanService {
	return &OrphanService{ledger: ledger, profiles: profiles, applications: applications, now: time.Now, log: log}
}

// Pending returns up to limit orphans, least recently attempted first.
func (s *OrphanService) Pending(ctx context.Context, limit int) ([]*domain.OrphanedAccount, error) {
	return s.ledger.List(ctx, limit)
}

// Reconcile re-runs EnsureProfile for o, then submits the pending
// application for instructor applicants. On success the ledger entry is
// removed; on failure the attempt is counted and the classified error returned.
func (s *OrphanService) Reconcile(ctx context.Context, o *domain.OrphanedAccount) error {
	if _, err := s.profiles.EnsureProfile(ctx, o.AccountID, o.Email, o.DisplayName, o.Role); err != nil {
		reason := string(domain.ProfileCreationFailed)
		var pe *domain.ProfileError
		if errors.As(err, &pe) {
			reason = string(pe.Kind)
		}
		return s.failed(ctx, o, reason, err)
	}

	if s.applications != nil && o.Role == domain.RoleInstructorPending && o.Instructor != nil {
		_, err := s.applications.SubmitApplication(ctx, o.AccountID, ApplicationFields{
			Email:   o.Email,
			Name:    o.DisplayName,
			Details: *o.Instructor,
		})
		if err != nil {
			reason := string(domain.ApplicationUnknown)
			var ae *domain.ApplicationError
			if errors.As(err, &ae) {
				reason = string(ae.Kind)
			}
			return s.failed(ctx, o, reason, err)
		}
	}

	if err := s.ledger.Resolve(ctx, o.AccountID); err != nil {
		return err
	}
	s.log.Info().
		Str("account_id", o.AccountID).
		Int("attempts", o.Attempts+1).
		Msg("orphaned account reconciled")
	return nil
}

func (s *OrphanService) failed(ctx context.Context, o *domain.OrphanedAccount, reason string, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	rerr := s.ledger.Record(ctx, &domain.OrphanedAccount{
		AccountID:   o.AccountID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		Role:        o.Role,
		Reason:      reason,
		Attempts:    1,
		FirstSeen:   o.FirstSeen,
		LastAttempt: s.now().UTC(),
		Instructor:  o.Instructor,
	})
	if rerr != nil {
		s.log.Error().Err(rerr).Str("account_id", o.AccountID).Msg("failed to update orphan attempts")
	}
	return err
}
