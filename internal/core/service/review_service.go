package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// ReviewService lets admins decide pending instructor applications.
type ReviewService struct {
	apps     ports.ApplicationStore
	profiles ports.ProfileStore
	log      zerolog.Logger
}

func NewReviewService(apps ports.ApplicationStore, profiles ports.ProfileStore, log zerolog.Logger) *ReviewService {
	return &ReviewService{apps: apps, profiles: profiles, log: log}
}

func (s *ReviewService) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error) {
	apps, err := s.apps.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Review applies an admin decision. Approving promotes the applicant's
// profile to the instructor role before the status is committed, so a failed
// promotion leaves the application pending and the decision can be retried.
func (s *ReviewService) Review(ctx context.Context, in ports.ReviewInput) (*domain.InstructorApplication, error) {
	app, err := s.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("review application: %w", err)
	}
	if !app.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("review application: %w (from %s to %s)", domain.ErrInvalidTransition, app.Status, in.Status)
	}

	at := in.At.UTC()
	if in.Status == domain.ApplicationApproved {
		if err := s.promote(ctx, app, at); err != nil {
			s.log.Error().Err(err).Str("application_id", app.ID).Str("account_id", app.UserID).Msg("failed to promote instructor profile")
			return nil, fmt.Errorf("review application: promote profile: %w", err)
		}
	}

	if err := s.apps.UpdateStatus(ctx, app.ID, app.Status, in.Status, in.Reviewer, at); err != nil {
		return nil, fmt.Errorf("review application: %w", err)
	}
	app.Status = in.Status
	app.ReviewedAt = &at
	app.ReviewedBy = in.Reviewer

	s.log.Info().
		Str("application_id", app.ID).
		Str("status", string(app.Status)).
		Str("reviewer", in.Reviewer).
		Msg("instructor application reviewed")
	return app, nil
}

// promote is an upsert, so repeating it after a failed status update is safe.
func (s *ReviewService) promote(ctx context.Context, app *domain.InstructorApplication, at time.Time) error {
	p, err := s.profiles.FindByID(ctx, app.UserID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &domain.ProfileRecord{
			ID:          app.UserID,
			Email:       app.Email,
			DisplayName: app.Name,
			CreatedAt:   at,
		}
	case err != nil:
		return err
	}
	p.Role = domain.RoleInstructor
	p.UpdatedAt = at
	return s.profiles.Upsert(ctx, p)
}
