package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// Cascade step names, also used as metric labels.
const (
	StepUpsert = "upsert"
	StepInsert = "insert"
	StepLookup = "lookup"
	StepVerify = "verify"
)

// stepResult tags what a cascade step observed.
type stepResult string

const (
	stepSucceeded stepResult = "succeeded"
	stepFailed    stepResult = "failed"
	stepMissing   stepResult = "missing"
)

type cascadeStep struct {
	name string
	run  func(ctx context.Context, p *domain.ProfileRecord) (stepResult, error)
}

// VerifyPolicy bounds the read-after-write check that follows a successful write.
type VerifyPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultVerifyPolicy waits at most ~700ms across four reads.
var DefaultVerifyPolicy = VerifyPolicy{Attempts: 4, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

// StepObserver is told the result of every cascade and verification step.
type StepObserver func(step, result string)

// ProfileReconciler guarantees a profile row exists for a provider account.
type ProfileReconciler struct {
	store   ports.ProfileStore
	policy  VerifyPolicy
	now     Clock
	sleep   func(ctx context.Context, d time.Duration) error
	observe StepObserver
	log     zerolog.Logger
}

// ReconcilerOption customises a ProfileReconciler.
type ReconcilerOption func(*ProfileReconciler)

func WithVerifyPolicy(p VerifyPolicy) ReconcilerOption {
	return func(r *ProfileReconciler) {
		if p.Attempts > 0 {
			r.policy = p
		}
	}
}

func WithReconcilerClock(c Clock) ReconcilerOption { return func(r *ProfileReconciler) { r.now = c } }

// WithSleeper replaces the backoff wait; tests pass a no-op.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) ReconcilerOption {
	return func(r *ProfileReconciler) { r.sleep = fn }
}

func WithStepObserver(fn StepObserver) ReconcilerOption {
	return func(r *ProfileReconciler) { r.observe = fn }
}

func NewProfileReconciler(store ports.ProfileStore, log zerolog.Logger, opts ...ReconcilerOption) *ProfileReconciler {
	r := &ProfileReconciler{
		store:   store,
		policy:  DefaultVerifyPolicy,
		now:     time.Now,
		sleep:   sleepContext,
		observe: func(string, string) {},
		log:     log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ProfileReconciler) cascade() []cascadeStep {
	return []cascadeStep{
		{name: StepUpsert, run: func(ctx context.Context, p *domain.ProfileRecord) (stepResult, error) {
			if err := r.store.Upsert(ctx, p); err != nil {
				return stepFailed, err
			}
			return stepSucceeded, nil
		}},
		{name: StepInsert, run: func(ctx context.Context, p *domain.ProfileRecord) (stepResult, error) {
			if err := r.store.Insert(ctx, p); err != nil {
				return stepFailed, err
			}
			return stepSucceeded, nil
		}},
		{name: StepLookup, run: func(ctx context.Context, p *domain.ProfileRecord) (stepResult, error) {
			_, err := r.store.FindByID(ctx, p.ID)
			switch {
			case err == nil:
				return stepSucceeded, nil
			case errors.Is(err, domain.ErrProfileNotFound):
				return stepMissing, nil
			default:
				return stepFailed, err
			}
		}},
	}
}

// EnsureProfile runs upsert, then insert, then an existence check, stopping
// at the first step that succeeds, and then verifies the row is readable.
// Re-running it for the same account converges on a single row.
func (r *ProfileReconciler) EnsureProfile(ctx context.Context, accountID, email, displayName, role string) (*domain.ProfileRecord, error) {
	now := r.now().UTC()
	rec := &domain.ProfileRecord{
		ID:          accountID,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var (
		failures []error
		lastErr  error
		lastStep string
	)
	for _, step := range r.cascade() {
		res, err := step.run(ctx, rec)
		r.observe(step.name, string(res))

		switch res {
		case stepSucceeded:
			r.log.Debug().Str("account_id", accountID).Str("step", step.name).Msg("profile write accepted")
			return r.verify(ctx, accountID)
		case stepFailed:
			logStoreError(r.log.Warn(), err).
				Str("account_id", accountID).
				Str("step", step.name).
				Msg("profile step failed, falling back")
			failures = append(failures, err)
			lastErr, lastStep = err, step.name
		case stepMissing:
			r.log.Warn().Str("account_id", accountID).Msg("profile not found after failed writes")
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return nil, &domain.ProfileError{
		Kind:      classifyProfileFailure(failures),
		AccountID: accountID,
		Step:      lastStep,
		Err:       lastErr,
	}
}

// verify reads the row back with bounded exponential backoff. A write that
// reported success but never becomes readable is a VerificationFailed.
func (r *ProfileReconciler) verify(ctx context.Context, accountID string) (*domain.ProfileRecord, error) {
	delay := r.policy.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		p, err := r.store.FindByID(ctx, accountID)
		if err == nil {
			r.observe(StepVerify, string(stepSucceeded))
			r.log.Info().Str("account_id", accountID).Int("attempt", attempt).Msg("profile verified")
			return p, nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			lastErr = err
			logStoreError(r.log.Warn(), err).Str("account_id", accountID).Int("attempt", attempt).Msg("profile verification read failed")
		}
		if attempt == r.policy.Attempts {
			break
		}
		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
		if r.policy.MaxDelay > 0 && delay > r.policy.MaxDelay {
			delay = r.policy.MaxDelay
		}
	}

	r.observe(StepVerify, string(stepMissing))
	r.log.Error().Str("account_id", accountID).Int("attempts", r.policy.Attempts).Msg("profile write not visible")
	return nil, &domain.ProfileError{
		Kind:      domain.ProfileVerificationFailed,
		AccountID: accountID,
		Step:      StepVerify,
		Err:       lastErr,
	}
}

// classifyProfileFailure picks the most actionable kind across all step
// failures: a policy denial beats a permission denial beats anything else.
func classifyProfileFailure(errs []error) domain.ProfileErrorKind {
	kind := domain.ProfileCreationFailed
	for _, err := range errs {
		switch storeDenial(err) {
		case domain.ProfilePolicyRejected:
			return domain.ProfilePolicyRejected
		case domain.ProfilePermissionDenied:
			kind = domain.ProfilePermissionDenied
		}
	}
	return kind
}

// storeDenial reports whether err is a row-level-security rejection or a
// plain permission denial. Both arrive as SQLSTATE 42501, so the message decides.
func storeDenial(err error) domain.ProfileErrorKind {
	var se *ports.StoreError
	if !errors.As(err, &se) {
		return ""
	}
	msg := strings.ToLower(se.Message)
	switch {
	case strings.Contains(msg, "row-level security"), strings.Contains(msg, "row level security"):
		return domain.ProfilePolicyRejected
	case se.Code == ports.CodeInsufficientPrivilege, strings.Contains(msg, "permission denied"):
		return domain.ProfilePermissionDenied
	}
	return ""
}

func logStoreError(ev *zerolog.Event, err error) *zerolog.Event {
	ev = ev.Err(err)
	var se *ports.StoreError
	if errors.As(err, &se) {
		ev = ev.Str("code", se.Code).Str("details", se.Details).Str("hint", se.Hint)
	}
	return ev
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
