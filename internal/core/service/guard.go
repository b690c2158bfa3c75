package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// Clock returns the current time. Tests substitute a controllable one.
type Clock func() time.Time

const defaultTick = time.Second

// Guard blocks resubmission while a client is in a provider-imposed cooldown.
// It is a convenience for honest clients, not a security control: Clear lets
// the user override it.
type Guard struct {
	store ports.CooldownStore
	now   Clock
	tick  time.Duration
	log   zerolog.Logger
}

// GuardOption customises a Guard.
type GuardOption func(*Guard)

// WithGuardClock replaces time.Now.
func WithGuardClock(c Clock) GuardOption { return func(g *Guard) { g.now = c } }

// WithGuardTick replaces the one-second countdown tick.
func WithGuardTick(d time.Duration) GuardOption { return func(g *Guard) { g.tick = d } }

// NewGuard returns a Guard backed by store.
func NewGuard(store ports.CooldownStore, log zerolog.Logger, opts ...GuardOption) *Guard {
	g := &Guard{store: store, now: time.Now, tick: defaultTick, log: log}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State loads the cooldown for key and refreshes its remaining seconds.
// An expired cooldown is deleted on the way out.
func (g *Guard) State(ctx context.Context, key string) (domain.RateLimitState, error) {
	until, ok, err := g.store.Get(ctx, key)
	if err != nil {
		return domain.RateLimitState{}, fmt.Errorf("guard state: %w", err)
	}
	if !ok {
		return domain.RateLimitState{}, nil
	}

	st := domain.RateLimitState{ActiveUntil: &until}
	st.Refresh(g.now())
	if st.ActiveUntil == nil {
		if err := g.store.Delete(ctx, key); err != nil {
			g.log.Warn().Err(err).Str("client", key).Msg("failed to clear expired cooldown")
		}
	}
	return st, nil
}

// CheckAndMaybeBlock is called before every submission. A blocked result means
// the submission must be rejected without touching the network.
func (g *Guard) CheckAndMaybeBlock(ctx context.Context, key string) (ports.GuardStatus, error) {
	st, err := g.State(ctx, key)
	if err != nil {
		return ports.GuardStatus{}, err
	}
	return ports.GuardStatus{Blocked: st.RemainingSeconds > 0, RemainingSeconds: st.RemainingSeconds}, nil
}

// Activate starts a cooldown of the given length for key.
func (g *Guard) Activate(ctx context.Context, key string, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	until := g.now().Add(time.Duration(seconds) * time.Second)
	if err := g.store.Set(ctx, key, until); err != nil {
		return fmt.Errorf("guard activate: %w", err)
	}
	g.log.Info().Str("client", key).Int("seconds", seconds).Msg("signup cooldown activated")
	return nil
}

// Clear is the manual override: the user asserts the wait is over.
func (g *Guard) Clear(ctx context.Context, key string) error {
	if err := g.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("guard clear: %w", err)
	}
	g.log.Info().Str("client", key).Msg("signup cooldown cleared by user")
	return nil
}

// Watch emits the cooldown status now and then once per tick until the
// cooldown reaches zero, emit fails, or ctx is done. The ticker is always stopped.
func (g *Guard) Watch(ctx context.Context, key string, emit func(ports.GuardStatus) error) error {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		st, err := g.CheckAndMaybeBlock(ctx, key)
		if err != nil {
			return err
		}
		if err := emit(st); err != nil {
			return err
		}
		if !st.Blocked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
