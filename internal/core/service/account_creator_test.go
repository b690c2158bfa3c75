package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		msg      string
		kind     domain.AccountErrorKind
		cooldown int
	}{
		{"For security purposes, you can only request this after 48 seconds.", domain.AccountThrottledShort, 48},
		{"for security purposes, you can only request this after 48 SECONDS", domain.AccountThrottledShort, 48},
		{"For security purposes, you can only request this once every 60 seconds", domain.AccountThrottledGeneric, 60},
		{"FOR SECURITY PURPOSES please slow down", domain.AccountThrottledGeneric, 60},
		{"User already registered", domain.AccountAlreadyExists, 0},
		{"user ALREADY REGISTERED with this email", domain.AccountAlreadyExists, 0},
		{"Database error saving new user", domain.AccountUnknown, 0},
		{"", domain.AccountUnknown, 0},
	}

	for _, tc := range cases {
		ae := ClassifyProviderError(&ports.ProviderError{Status: 400, Message: tc.msg})
		if ae.Kind != tc.kind {
			t.Errorf("%q: expected kind %s, got %s", tc.msg, tc.kind, ae.Kind)
		}
		if ae.CooldownSeconds != tc.cooldown {
			t.Errorf("%q: expected cooldown %d, got %d", tc.msg, tc.cooldown, ae.CooldownSeconds)
		}
		if ae.Message != tc.msg {
			t.Errorf("%q: raw message not preserved, got %q", tc.msg, ae.Message)
		}
	}
}

func TestClassifyProviderError_PlainError(t *testing.T) {
	ae := ClassifyProviderError(errors.New("dial tcp: connection refused"))
	if ae.Kind != domain.AccountUnknown {
		t.Fatalf("expected unknown, got %s", ae.Kind)
	}
	if ae.Throttled() {
		t.Fatal("transport failures must not arm a cooldown")
	}
}

func TestAccountCreator_PassesRoleMetadata(t *testing.T) {
	idp := &stubIdentity{signUpFn: returnsAccount("acct-1")}
	c := NewAccountCreator(idp, zerolog.Nop())

	rec, err := c.CreateAccount(context.Background(), domain.SignupRequest{
		Role:        domain.RoleInstructorPending,
		Email:       "ada@example.com",
		Password:    "secret123",
		DisplayName: "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.AccountID != "acct-1" || rec.Email != "ada@example.com" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if idp.calls != 1 {
		t.Fatalf("expected exactly one signup call, got %d", idp.calls)
	}
	want := ports.SignupMetadata{Role: domain.RoleInstructorPending, FullName: "Ada Lovelace"}
	if idp.lastMeta != want {
		t.Fatalf("expected metadata %+v, got %+v", want, idp.lastMeta)
	}
}

func TestAccountCreator_ClassifiesFailure(t *testing.T) {
	idp := &stubIdentity{signUpFn: returnsProviderError(429, "For security purposes, you can only request this after 48 seconds.")}
	c := NewAccountCreator(idp, zerolog.Nop())

	_, err := c.CreateAccount(context.Background(), domain.SignupRequest{Email: "a@b.co"})

	var ae *domain.AccountError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AccountError, got %T", err)
	}
	if ae.Kind != domain.AccountThrottledShort || ae.CooldownSeconds != 48 {
		t.Fatalf("unexpected classification: %+v", ae)
	}
	var pe *ports.ProviderError
	if !errors.As(err, &pe) {
		t.Fatal("expected the provider error to remain reachable")
	}
}

func TestAccountCreator_EmptyIDIsUnknown(t *testing.T) {
	idp := &stubIdentity{signUpFn: returnsAccount("")}
	c := NewAccountCreator(idp, zerolog.Nop())

	_, err := c.CreateAccount(context.Background(), domain.SignupRequest{Email: "a@b.co"})

	var ae *domain.AccountError
	if !errors.As(err, &ae) || ae.Kind != domain.AccountUnknown {
		t.Fatalf("expected unknown AccountError, got %v", err)
	}
}
