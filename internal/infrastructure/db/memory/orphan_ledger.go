package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// OrphanLedger implements ports.OrphanLedger.
type OrphanLedger struct {
	mu   sync.Mutex
	rows map[string]domain.OrphanedAccount
}

func NewOrphanLedger() *OrphanLedger {
	return &OrphanLedger{rows: make(map[string]domain.OrphanedAccount)}
}

// Record keeps FirstSeen from the earliest entry and adds up attempts.
func (l *OrphanLedger) Record(_ context.Context, o *domain.OrphanedAccount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	row := *o
	if existing, ok := l.rows[o.AccountID]; ok {
		row.FirstSeen = existing.FirstSeen
		row.Attempts = existing.Attempts + o.Attempts
	}
	l.rows[o.AccountID] = row
	return nil
}

// List returns the least recently attempted orphans first, so entries that
// keep failing rotate to the back of the sweep.
func (l *OrphanLedger) List(_ context.Context, limit int) ([]*domain.OrphanedAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*domain.OrphanedAccount, 0, len(l.rows))
	for _, row := range l.rows {
		r := row
		out = append(out, &r)
	}
	sortOrphans(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *OrphanLedger) Resolve(_ context.Context, accountID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rows, accountID)
	return nil
}

func sortOrphans(out []*domain.OrphanedAccount) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastAttempt.Equal(out[j].LastAttempt) {
			return out[i].LastAttempt.Before(out[j].LastAttempt)
		}
		return out[i].FirstSeen.Before(out[j].FirstSeen)
	})
}
