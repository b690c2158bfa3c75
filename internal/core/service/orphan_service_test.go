package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/infrastructure/db/memory"
)

func newTestOrphanService(profiles *memory.ProfileStore) (*OrphanService, *memory.OrphanLedger, *fakeClock) {
	svc, ledger, clk, _ := newTestOrphanServiceWithApps(profiles)
	return svc, ledger, clk
}

func newTestOrphanServiceWithApps(profiles *memory.ProfileStore) (*OrphanService, *memory.OrphanLedger, *fakeClock, *memory.ApplicationStore) {
	ledger := memory.NewOrphanLedger()
	apps := memory.NewApplicationStore()
	clk := newFakeClock()
	r, _ := newTestReconciler(profiles)
	svc := NewOrphanService(ledger, r, NewApplicationWriter(apps, zerolog.Nop()), zerolog.Nop())
	svc.now = clk.Now
	return svc, ledger, clk, apps
}

func orphan(id string, firstSeen time.Time) *domain.OrphanedAccount {
	return &domain.OrphanedAccount{
		AccountID:   id,
		Email:       id + "@example.com",
		DisplayName: id,
		Role:        domain.RoleStudent,
		Reason:      string(domain.ProfilePermissionDenied),
		Attempts:    1,
		FirstSeen:   firstSeen,
		LastAttempt: firstSeen,
	}
}

func TestOrphanReconcile_ResolvesOnSuccess(t *testing.T) {
	profiles := memory.NewProfileStore()
	svc, ledger, clk := newTestOrphanService(profiles)
	ctx := context.Background()
	o := orphan("u1", clk.Now())
	_ = ledger.Record(ctx, o)

	if err := svc.Reconcile(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.Len() != 1 {
		t.Fatal("expected profile to be created")
	}
	pending, _ := svc.Pending(ctx, 0)
	if len(pending) != 0 {
		t.Fatalf("expected ledger to be empty, got %+v", pending)
	}
}

func TestOrphanReconcile_CountsFailedAttempt(t *testing.T) {
	profiles := memory.NewProfileStore()
	profiles.FailUpsert = permissionDenied()
	profiles.FailInsert = permissionDenied()
	svc, ledger, clk := newTestOrphanService(profiles)
	ctx := context.Background()
	first := clk.Now()
	o := orphan("u1", first)
	_ = ledger.Record(ctx, o)

	clk.Advance(time.Minute)
	err := svc.Reconcile(ctx, o)

	var pe *domain.ProfileError
	if !errors.As(err, &pe) || pe.Kind != domain.ProfilePermissionDenied {
		t.Fatalf("expected permission_denied, got %v", err)
	}
	pending, _ := svc.Pending(ctx, 0)
	if len(pending) != 1 {
		t.Fatalf("expected orphan to stay pending, got %d", len(pending))
	}
	got := pending[0]
	if got.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", got.Attempts)
	}
	if !got.FirstSeen.Equal(first) || !got.LastAttempt.Equal(first.Add(time.Minute)) {
		t.Fatalf("unexpected timestamps: first=%v last=%v", got.FirstSeen, got.LastAttempt)
	}
}

func TestOrphanPending_OldestFirst(t *testing.T) {
	svc, ledger, clk := newTestOrphanService(memory.NewProfileStore())
	ctx := context.Background()
	base := clk.Now()
	_ = ledger.Record(ctx, orphan("newer", base.Add(time.Hour)))
	_ = ledger.Record(ctx, orphan("older", base))
	_ = ledger.Record(ctx, orphan("newest", base.Add(2*time.Hour)))

	pending, err := svc.Pending(ctx, 2)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 || pending[0].AccountID != "older" || pending[1].AccountID != "newer" {
		t.Fatalf("unexpected order: %+v", pending)
	}
}

func TestOrphanReconcile_FilesInstructorApplication(t *testing.T) {
	profiles := memory.NewProfileStore()
	svc, ledger, clk, apps := newTestOrphanServiceWithApps(profiles)
	ctx := context.Background()
	o := orphan("u1", clk.Now())
	o.Role = domain.RoleInstructorPending
	d := testInstructorDetails()
	o.Instructor = &d
	_ = ledger.Record(ctx, o)

	if err := svc.Reconcile(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := profiles.FindByID(ctx, "u1")
	if p == nil || p.Role != domain.RoleInstructorPending {
		t.Fatalf("expected instructor_pending profile, got %+v", p)
	}
	filed, _ := apps.List(ctx, domain.ApplicationPending)
	if len(filed) != 1 || filed[0].UserID != "u1" || filed[0].Bio != d.Bio {
		t.Fatalf("expected one pending application for u1, got %+v", filed)
	}
	pending, _ := svc.Pending(ctx, 0)
	if len(pending) != 0 {
		t.Fatalf("expected ledger to be empty, got %+v", pending)
	}
}

func TestOrphanReconcile_ApplicationFailureKeepsEntry(t *testing.T) {
	profiles := memory.NewProfileStore()
	svc, ledger, clk, apps := newTestOrphanServiceWithApps(profiles)
	apps.FailInsert = errors.New("connection reset")
	ctx := context.Background()
	o := orphan("u1", clk.Now())
	o.Role = domain.RoleInstructorPending
	d := testInstructorDetails()
	o.Instructor = &d
	_ = ledger.Record(ctx, o)

	var ae *domain.ApplicationError
	if err := svc.Reconcile(ctx, o); !errors.As(err, &ae) {
		t.Fatalf("expected ApplicationError, got %v", err)
	}
	pending, _ := svc.Pending(ctx, 0)
	if len(pending) != 1 || pending[0].Instructor == nil || pending[0].Reason != string(domain.ApplicationUnknown) {
		t.Fatalf("expected entry kept with instructor details, got %+v", pending)
	}
}

func TestOrphanPending_FailingEntriesRotateBehindNewOnes(t *testing.T) {
	profiles := memory.NewProfileStore()
	profiles.FailUpsert = permissionDenied()
	profiles.FailInsert = permissionDenied()
	svc, ledger, clk := newTestOrphanService(profiles)
	ctx := context.Background()
	base := clk.Now()
	const batch = 5
	for i := 0; i < batch; i++ {
		_ = ledger.Record(ctx, orphan(fmt.Sprintf("old-%d", i), base.Add(time.Duration(i)*time.Second)))
	}
	_ = ledger.Record(ctx, orphan("fresh", base.Add(time.Hour)))

	first, _ := svc.Pending(ctx, batch)
	for _, o := range first {
		if o.AccountID == "fresh" {
			t.Fatal("fresh orphan should not fit in the first batch")
		}
	}
	clk.Advance(2 * time.Hour)
	for _, o := range first {
		_ = svc.Reconcile(ctx, o)
	}

	second, _ := svc.Pending(ctx, batch)
	if len(second) == 0 || second[0].AccountID != "fresh" {
		t.Fatalf("expected fresh orphan first after the backlog failed, got %+v", second)
	}
}
