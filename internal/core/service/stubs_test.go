package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type stubIdentity struct {
	signUpFn func(ctx context.Context, email, password string, meta ports.SignupMetadata) (string, error)
	calls    int
	lastMeta ports.SignupMetadata
}

func (s *stubIdentity) SignUp(ctx context.Context, email, password string, meta ports.SignupMetadata) (string, error) {
	s.calls++
	s.lastMeta = meta
	return s.signUpFn(ctx, email, password, meta)
}

func returnsAccount(id string) func(context.Context, string, string, ports.SignupMetadata) (string, error) {
	return func(context.Context, string, string, ports.SignupMetadata) (string, error) { return id, nil }
}

func returnsProviderError(status int, msg string) func(context.Context, string, string, ports.SignupMetadata) (string, error) {
	return func(context.Context, string, string, ports.SignupMetadata) (string, error) {
		return "", &ports.ProviderError{Status: status, Message: msg}
	}
}

type brokenCooldownStore struct{}

var errCooldownDown = errors.New("cooldown store unreachable")

func (brokenCooldownStore) Get(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, errCooldownDown
}
func (brokenCooldownStore) Set(context.Context, string, time.Time) error { return errCooldownDown }
func (brokenCooldownStore) Delete(context.Context, string) error         { return errCooldownDown }

// noSleep records requested backoff delays without waiting.
type noSleep struct {
	delays []time.Duration
}

func (n *noSleep) sleep(ctx context.Context, d time.Duration) error {
	n.delays = append(n.delays, d)
	return ctx.Err()
}

func permissionDenied() error {
	return &ports.StoreError{Op: "upsert profile", Code: ports.CodeInsufficientPrivilege, Message: "permission denied for table profiles"}
}

func policyRejected() error {
	return &ports.StoreError{
		Op:      "insert profile",
		Code:    ports.CodeInsufficientPrivilege,
		Message: `new row violates row-level security policy for table "profiles"`,
	}
}

type brokenOrphanLedger struct{}

func (brokenOrphanLedger) Record(context.Context, *domain.OrphanedAccount) error {
	return errors.New("ledger unreachable")
}
func (brokenOrphanLedger) List(context.Context, int) ([]*domain.OrphanedAccount, error) {
	return nil, errors.New("ledger unreachable")
}
func (brokenOrphanLedger) Resolve(context.Context, string) error { return errors.New("ledger unreachable") }
