package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// ApplicationStore implements ports.ApplicationStore.
type ApplicationStore struct {
	mu   sync.Mutex
	rows map[string]domain.InstructorApplication

	FailInsert error
	Inserts    int
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{rows: make(map[string]domain.InstructorApplication)}
}

func (s *ApplicationStore) Insert(_ context.Context, app *domain.InstructorApplication) (*domain.InstructorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inserts++
	if s.FailInsert != nil {
		return nil, s.FailInsert
	}
	row := *app
	row.ID = uuid.NewString()
	s.rows[row.ID] = row
	return &row, nil
}

func (s *ApplicationStore) FindByID(_ context.Context, id string) (*domain.InstructorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &row, nil
}

func (s *ApplicationStore) List(_ context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.InstructorApplication, 0, len(s.rows))
	for _, row := range s.rows {
		if status != "" && row.Status != status {
			continue
		}
		r := row
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *ApplicationStore) UpdateStatus(_ context.Context, id string, from, to domain.ApplicationStatus, reviewer string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if row.Status != from {
		return domain.ErrInvalidTransition
	}
	row.Status = to
	row.ReviewedBy = reviewer
	row.ReviewedAt = &at
	s.rows[id] = row
	return nil
}
