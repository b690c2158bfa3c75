package ports

import (
	"context"
	"time"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// ApplicationStore persists instructor applications.
type ApplicationStore interface {
	// Insert stores app and returns it with its generated ID.
	Insert(ctx context.Context, app *domain.InstructorApplication) (*domain.InstructorApplication, error)
	// FindByID returns domain.ErrApplicationNotFound when missing.
	FindByID(ctx context.Context, id string) (*domain.InstructorApplication, error)
	// List returns applications, newest first. An empty status means all.
	List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error)
	// UpdateStatus moves an application from one status to another only if it is still in from.
	// It returns domain.ErrInvalidTransition when the row is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewer string, at time.Time) error
}
