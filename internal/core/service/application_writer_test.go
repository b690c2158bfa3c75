package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
	"github.com/campusly/lms-platform/internal/infrastructure/db/memory"
)

func testInstructorDetails() domain.InstructorDetails {
	return domain.InstructorDetails{
		Expertise:  "Distributed systems",
		Experience: "10 years",
		Bio:        "I have taught graduate courses on consensus protocols and storage engines for a decade at two universities.",
		Motivation: "I want to reach learners who cannot attend a university in person.",
	}
}

func TestSubmitApplication_InsertsPending(t *testing.T) {
	store := memory.NewApplicationStore()
	w := NewApplicationWriter(store, zerolog.Nop())

	app, err := w.SubmitApplication(context.Background(), "acct-1", ApplicationFields{
		Email:   "ada@example.com",
		Name:    "Ada",
		Details: testInstructorDetails(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.ID == "" {
		t.Fatal("expected generated id")
	}
	if app.Status != domain.ApplicationPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if app.UserID != "acct-1" || app.Expertise != "Distributed systems" || app.SubmittedAt.IsZero() {
		t.Fatalf("unexpected application: %+v", app)
	}
	if store.Inserts != 1 {
		t.Fatalf("expected a single insert, got %d", store.Inserts)
	}
}

func TestSubmitApplication_ClassifiesFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind domain.ApplicationErrorKind
	}{
		{"undefined table", &ports.StoreError{Code: ports.CodeUndefinedTable, Message: `relation "instructor_applications" does not exist`}, domain.ApplicationSchemaMissing},
		{"schema cache table", &ports.StoreError{Code: ports.CodeSchemaCacheTable, Message: "Could not find the table"}, domain.ApplicationSchemaMissing},
		{"relation text only", &ports.StoreError{Message: `relation "x" does not exist`}, domain.ApplicationSchemaMissing},
		{"undefined column", &ports.StoreError{Code: ports.CodeUndefinedColumn, Message: `column "bio" does not exist`}, domain.ApplicationSchemaMismatch},
		{"schema cache column", &ports.StoreError{Code: ports.CodeSchemaCacheColumn, Message: "Could not find the 'bio' column"}, domain.ApplicationSchemaMismatch},
		{"other store error", &ports.StoreError{Code: "23514", Message: "check constraint violated"}, domain.ApplicationUnknown},
		{"non-store error", errors.New("timeout"), domain.ApplicationUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewApplicationStore()
			store.FailInsert = tc.err
			w := NewApplicationWriter(store, zerolog.Nop())

			_, err := w.SubmitApplication(context.Background(), "acct-1", ApplicationFields{Details: testInstructorDetails()})

			var ae *domain.ApplicationError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *ApplicationError, got %v", err)
			}
			if ae.Kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, ae.Kind)
			}
			if !errors.Is(err, tc.err) {
				t.Fatal("expected the store error to be wrapped")
			}
		})
	}
}
