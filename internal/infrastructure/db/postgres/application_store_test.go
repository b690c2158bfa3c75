package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

var applicationColumns = []string{
	"id", "user_id", "email", "name", "expertise", "experience", "organization",
	"bio", "motivation", "status", "submitted_at", "reviewed_at", "reviewed_by",
}

func testApplication() *domain.InstructorApplication {
	return &domain.InstructorApplication{
		UserID:      "acct-1",
		Email:       "grace@example.com",
		Name:        "Grace Hopper",
		Expertise:   "Compilers",
		Experience:  "10+ years",
		Bio:         "bio",
		Motivation:  "motivation",
		Status:      domain.ApplicationPending,
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestApplicationStore_Insert(t *testing.T) {
	_, apps, mock := newMock(t)
	app := testApplication()

	mock.ExpectQuery(regexp.QuoteMeta("RETURNING id")).
		WithArgs(app.UserID, app.Email, app.Name, app.Expertise, app.Experience,
			nil, app.Bio, app.Motivation, "pending", app.SubmittedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("6f1c0e6e-0000-4000-8000-000000000001"))

	got, err := apps.Insert(context.Background(), app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "6f1c0e6e-0000-4000-8000-000000000001" {
		t.Errorf("expected generated id, got %q", got.ID)
	}
	if app.ID != "" {
		t.Error("input application must not be mutated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationStore_Insert_UndefinedTable(t *testing.T) {
	_, apps, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO instructor_applications")).
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "instructor_applications" does not exist`})

	_, err := apps.Insert(context.Background(), testApplication())

	var storeErr *ports.StoreError
	if !errors.As(err, &storeErr) || storeErr.Code != ports.CodeUndefinedTable {
		t.Fatalf("expected undefined table store error, got %v", err)
	}
}

func TestApplicationStore_FindByID_NotFound(t *testing.T) {
	_, apps, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err := apps.FindByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationStore_FindByID_MalformedID(t *testing.T) {
	_, apps, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})

	_, err := apps.FindByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationStore_List_ByStatus(t *testing.T) {
	_, apps, mock := newMock(t)
	reviewed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("app-2", "acct-2", "b@example.com", "B", "Go", "5 years", nil, "bio", "mot", "approved",
			time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC), reviewed, "admin-1").
		AddRow("app-1", "acct-1", "a@example.com", "A", "Rust", "3 years", "Acme", "bio", "mot", "approved",
			time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), reviewed, "admin-1")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY submitted_at DESC")).
		WithArgs("approved").
		WillReturnRows(rows)

	got, err := apps.List(context.Background(), domain.ApplicationApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(got))
	}
	if got[0].Organization != "" || got[1].Organization != "Acme" {
		t.Errorf("organization not mapped: %q %q", got[0].Organization, got[1].Organization)
	}
	if got[0].ReviewedAt == nil || !got[0].ReviewedAt.Equal(reviewed) {
		t.Errorf("reviewed_at not mapped: %v", got[0].ReviewedAt)
	}
}

func TestApplicationStore_UpdateStatus(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("applies when still pending", func(t *testing.T) {
		_, apps, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE instructor_applications")).
			WithArgs("approved", "admin-1", at, "app-1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := apps.UpdateStatus(context.Background(), "app-1", domain.ApplicationPending, domain.ApplicationApproved, "admin-1", at); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero rows means already reviewed", func(t *testing.T) {
		_, apps, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE instructor_applications")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := apps.UpdateStatus(context.Background(), "app-1", domain.ApplicationPending, domain.ApplicationRejected, "admin-1", at)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}
