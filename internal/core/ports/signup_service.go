package ports

import (
	"context"
	"time"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// SignupService runs one signup attempt end to end.
type SignupService interface {
	// Submit returns an outcome for every attempt. The error is non-nil only
	// when ctx was cancelled before the attempt reached a terminal state.
	Submit(ctx context.Context, clientKey string, req domain.SignupRequest) (*domain.WorkflowOutcome, error)
}

// GuardStatus is the client-visible view of a cooldown.
type GuardStatus struct {
	Blocked          bool `json:"blocked"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// CooldownGuard exposes the Rate-Limit Guard to the transport layer.
type CooldownGuard interface {
	CheckAndMaybeBlock(ctx context.Context, key string) (GuardStatus, error)
	Clear(ctx context.Context, key string) error
	// Watch emits the status once per tick until the cooldown ends or ctx is done.
	Watch(ctx context.Context, key string, emit func(GuardStatus) error) error
}

// ReviewInput carries an admin decision on an application.
type ReviewInput struct {
	ApplicationID string
	Status        domain.ApplicationStatus
	Reviewer      string
	At            time.Time
}

// ApplicationReviewService lists and decides instructor applications.
type ApplicationReviewService interface {
	List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error)
	Review(ctx context.Context, in ReviewInput) (*domain.InstructorApplication, error)
}
