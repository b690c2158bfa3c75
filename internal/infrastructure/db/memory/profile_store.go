// Package memory holds map-backed adapters for local development and tests.
// Each store can be told to fail specific operations so the signup cascade's
// fallback paths can be exercised without a database.
package memory

import (
	"context"
	"sync"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// ProfileStore implements ports.ProfileStore.
type ProfileStore struct {
	mu   sync.Mutex
	rows map[string]domain.ProfileRecord

	// Fail* inject an error into the matching operation when non-nil.
	FailUpsert error
	FailInsert error
	FailFind   error
	// HideReads makes FindByID report not-found this many times, simulating read lag.
	HideReads int

	Calls map[string]int
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{rows: make(map[string]domain.ProfileRecord), Calls: make(map[string]int)}
}

// Upsert keeps the original CreatedAt when the row already exists.
func (s *ProfileStore) Upsert(_ context.Context, p *domain.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["upsert"]++
	if s.FailUpsert != nil {
		return s.FailUpsert
	}
	row := *p
	if existing, ok := s.rows[p.ID]; ok {
		row.CreatedAt = existing.CreatedAt
	}
	s.rows[p.ID] = row
	return nil
}

func (s *ProfileStore) Insert(_ context.Context, p *domain.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["insert"]++
	if s.FailInsert != nil {
		return s.FailInsert
	}
	if _, ok := s.rows[p.ID]; ok {
		return &ports.StoreError{
			Op:      "insert profile",
			Code:    ports.CodeUniqueViolation,
			Message: `duplicate key value violates unique constraint "profiles_pkey"`,
		}
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *ProfileStore) FindByID(_ context.Context, id string) (*domain.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["find"]++
	if s.FailFind != nil {
		return nil, s.FailFind
	}
	if s.HideReads > 0 {
		s.HideReads--
		return nil, domain.ErrProfileNotFound
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &row, nil
}

// Put seeds a row directly, bypassing failure injection.
func (s *ProfileStore) Put(p domain.ProfileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[p.ID] = p
}

// Len returns the number of stored profiles.
func (s *ProfileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
