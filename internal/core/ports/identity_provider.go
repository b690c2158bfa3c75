package ports

import (
	"context"
	"fmt"
)

// SignupMetadata is attached to the provider account at creation time.
type SignupMetadata struct {
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// IdentityProvider creates credential-bearing accounts. It owns password
// storage, sessions and email verification.
type IdentityProvider interface {
	// SignUp returns the new account id, or a *ProviderError.
	SignUp(ctx context.Context, email, password string, meta SignupMetadata) (accountID string, err error)
}

// ProviderError is the raw failure reported by the identity provider. The
// provider does not expose structured codes reliably, so Message is what the
// classifier works from.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity provider (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("identity provider (%d): %s", e.Status, e.Message)
}
