package ports

import (
	"context"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// ProfileStore persists profile rows keyed by account id.
type ProfileStore interface {
	// Upsert writes the row, overwriting any existing row with the same id.
	Upsert(ctx context.Context, p *domain.ProfileRecord) error
	// Insert writes the row without conflict handling.
	Insert(ctx context.Context, p *domain.ProfileRecord) error
	// FindByID returns domain.ErrProfileNotFound when no row exists.
	FindByID(ctx context.Context, id string) (*domain.ProfileRecord, error)
}
