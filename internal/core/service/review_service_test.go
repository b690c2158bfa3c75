package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
	"github.com/campusly/lms-platform/internal/infrastructure/db/memory"
)

func seedApplication(t *testing.T, apps *memory.ApplicationStore, userID string) *domain.InstructorApplication {
	t.Helper()
	app, err := apps.Insert(context.Background(), &domain.InstructorApplication{
		UserID:      userID,
		Email:       userID + "@example.com",
		Name:        "Applicant " + userID,
		Status:      domain.ApplicationPending,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return app
}

func TestReview_ApprovePromotesProfile(t *testing.T) {
	apps := memory.NewApplicationStore()
	profiles := memory.NewProfileStore()
	profiles.Put(domain.ProfileRecord{ID: "u1", Email: "u1@example.com", Role: domain.RoleInstructorPending})
	app := seedApplication(t, apps, "u1")
	svc := NewReviewService(apps, profiles, zerolog.Nop())
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	got, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: app.ID,
		Status:        domain.ApplicationApproved,
		Reviewer:      "admin-1",
		At:            at,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.ApplicationApproved || got.ReviewedBy != "admin-1" || !got.ReviewedAt.Equal(at) {
		t.Fatalf("unexpected application: %+v", got)
	}

	p, _ := profiles.FindByID(context.Background(), "u1")
	if p.Role != domain.RoleInstructor {
		t.Fatalf("expected profile promoted to instructor, got %s", p.Role)
	}
}

func TestReview_ApproveCreatesMissingProfile(t *testing.T) {
	apps := memory.NewApplicationStore()
	profiles := memory.NewProfileStore()
	app := seedApplication(t, apps, "u2")
	svc := NewReviewService(apps, profiles, zerolog.Nop())

	if _, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: app.ID,
		Status:        domain.ApplicationApproved,
		Reviewer:      "admin-1",
		At:            time.Now(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := profiles.FindByID(context.Background(), "u2")
	if err != nil {
		t.Fatalf("expected profile to be created: %v", err)
	}
	if p.Role != domain.RoleInstructor || p.Email != "u2@example.com" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestReview_FailedPromotionKeepsApplicationPending(t *testing.T) {
	apps := memory.NewApplicationStore()
	profiles := memory.NewProfileStore()
	profiles.Put(domain.ProfileRecord{ID: "u1", Email: "u1@example.com", Role: domain.RoleInstructorPending})
	profiles.FailUpsert = errors.New("transient outage")
	app := seedApplication(t, apps, "u1")
	svc := NewReviewService(apps, profiles, zerolog.Nop())
	ctx := context.Background()
	in := ports.ReviewInput{ApplicationID: app.ID, Status: domain.ApplicationApproved, Reviewer: "admin-1", At: time.Now()}

	if _, err := svc.Review(ctx, in); err == nil {
		t.Fatal("expected promotion error")
	}
	stored, _ := apps.FindByID(ctx, app.ID)
	if stored.Status != domain.ApplicationPending {
		t.Fatalf("expected application to stay pending, got %s", stored.Status)
	}

	profiles.FailUpsert = nil
	got, err := svc.Review(ctx, in)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got.Status != domain.ApplicationApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	p, _ := profiles.FindByID(ctx, "u1")
	if p.Role != domain.RoleInstructor {
		t.Fatalf("expected profile promoted on retry, got %s", p.Role)
	}
}

func TestReview_RejectLeavesProfile(t *testing.T) {
	apps := memory.NewApplicationStore()
	profiles := memory.NewProfileStore()
	profiles.Put(domain.ProfileRecord{ID: "u1", Role: domain.RoleInstructorPending})
	app := seedApplication(t, apps, "u1")
	svc := NewReviewService(apps, profiles, zerolog.Nop())

	if _, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: app.ID,
		Status:        domain.ApplicationRejected,
		Reviewer:      "admin-1",
		At:            time.Now(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, _ := profiles.FindByID(context.Background(), "u1")
	if p.Role != domain.RoleInstructorPending {
		t.Fatalf("rejection must not change the role, got %s", p.Role)
	}
}

func TestReview_SecondDecisionRejected(t *testing.T) {
	apps := memory.NewApplicationStore()
	app := seedApplication(t, apps, "u1")
	svc := NewReviewService(apps, memory.NewProfileStore(), zerolog.Nop())
	ctx := context.Background()

	in := ports.ReviewInput{ApplicationID: app.ID, Status: domain.ApplicationRejected, Reviewer: "admin-1", At: time.Now()}
	if _, err := svc.Review(ctx, in); err != nil {
		t.Fatalf("first review: %v", err)
	}

	in.Status = domain.ApplicationApproved
	_, err := svc.Review(ctx, in)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReview_NotFound(t *testing.T) {
	svc := NewReviewService(memory.NewApplicationStore(), memory.NewProfileStore(), zerolog.Nop())

	_, err := svc.Review(context.Background(), ports.ReviewInput{ApplicationID: "missing", Status: domain.ApplicationApproved})
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestReviewList_FiltersByStatus(t *testing.T) {
	apps := memory.NewApplicationStore()
	first := seedApplication(t, apps, "u1")
	seedApplication(t, apps, "u2")
	svc := NewReviewService(apps, memory.NewProfileStore(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Review(ctx, ports.ReviewInput{ApplicationID: first.ID, Status: domain.ApplicationRejected, At: time.Now()}); err != nil {
		t.Fatalf("review: %v", err)
	}

	pending, err := svc.List(ctx, domain.ApplicationPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 || pending[0].UserID != "u2" {
		t.Fatalf("expected only u2 pending, got %+v", pending)
	}
	all, _ := svc.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(all))
	}
}
