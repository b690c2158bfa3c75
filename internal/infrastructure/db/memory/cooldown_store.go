package memory

import (
	"context"
	"sync"
	"time"
)

// CooldownStore implements ports.CooldownStore for a single process.
type CooldownStore struct {
	mu    sync.Mutex
	until map[string]time.Time
}

func NewCooldownStore() *CooldownStore {
	return &CooldownStore{until: make(map[string]time.Time)}
}

func (s *CooldownStore) Get(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.until[key]
	return t, ok, nil
}

func (s *CooldownStore) Set(_ context.Context, key string, activeUntil time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[key] = activeUntil
	return nil
}

func (s *CooldownStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.until, key)
	return nil
}

// Sweep drops cooldowns that ended before now and returns how many were removed.
func (s *CooldownStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, t := range s.until {
		if !t.After(now) {
			delete(s.until, k)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *CooldownStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
