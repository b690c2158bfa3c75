package domain

import "time"

// RateLimitState is the cooldown a client is under after the identity provider throttled it.
// It is never persisted beyond the cooldown itself.
type RateLimitState struct {
	ActiveUntil      *time.Time `json:"active_until,omitempty"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

// Remaining returns max(0, ceil((ActiveUntil - now) / 1s)).
func (s RateLimitState) Remaining(now time.Time) int {
	if s.ActiveUntil == nil {
		return 0
	}
	d := s.ActiveUntil.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Refresh recomputes RemainingSeconds and clears the state once it reaches zero.
func (s *RateLimitState) Refresh(now time.Time) {
	s.RemainingSeconds = s.Remaining(now)
	if s.RemainingSeconds == 0 {
		s.ActiveUntil = nil
	}
}
