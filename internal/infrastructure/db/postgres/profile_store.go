package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const (
	upsertProfileSQL = `
		INSERT INTO profiles (id, email, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at`

	insertProfileSQL = `
		INSERT INTO profiles (id, email, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	findProfileSQL = `SELECT id, email, full_name, role, created_at, updated_at FROM profiles WHERE id = $1`
)

// ProfileStore implements ports.ProfileStore on the profiles table.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Upsert(ctx context.Context, p *domain.ProfileRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, upsertProfileSQL, p.ID, p.Email, p.DisplayName, p.Role, p.CreatedAt, p.UpdatedAt)
	return toStoreError("upsert profile", err)
}

func (s *ProfileStore) Insert(ctx context.Context, p *domain.ProfileRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, insertProfileSQL, p.ID, p.Email, p.DisplayName, p.Role, p.CreatedAt, p.UpdatedAt)
	return toStoreError("insert profile", err)
}

func (s *ProfileStore) FindByID(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ProfileRecord
	err := s.db.QueryRowContext(ctx, findProfileSQL, id).
		Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, toStoreError("find profile", err)
	}
	return &p, nil
}
