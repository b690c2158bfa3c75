package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// Provider phrases the classifier keys on. The provider only exposes free
// text for these cases; wording changes here must be caught by the
// identity adapter's contract tests.
const (
	phraseShortCooldown = "48 seconds"
	phraseThrottled     = "security purposes"
	phraseDuplicate     = "already registered"

	ShortCooldownSeconds   = 48
	GenericCooldownSeconds = 60
)

// ClassifyProviderError turns a raw signup failure into an AccountError.
// Matching is case-insensitive and ordered: the short-cooldown text also
// contains the generic throttling phrase.
func ClassifyProviderError(err error) *domain.AccountError {
	msg := err.Error()
	var pe *ports.ProviderError
	if errors.As(err, &pe) {
		msg = pe.Message
	}
	lower := strings.ToLower(msg)

	ae := &domain.AccountError{Kind: domain.AccountUnknown, Message: msg, Err: err}
	switch {
	case strings.Contains(lower, phraseShortCooldown):
		ae.Kind = domain.AccountThrottledShort
		ae.CooldownSeconds = ShortCooldownSeconds
	case strings.Contains(lower, phraseThrottled):
		ae.Kind = domain.AccountThrottledGeneric
		ae.CooldownSeconds = GenericCooldownSeconds
	case strings.Contains(lower, phraseDuplicate):
		ae.Kind = domain.AccountAlreadyExists
	}
	return ae
}

// AccountCreator makes exactly one signup call per submission.
type AccountCreator struct {
	idp ports.IdentityProvider
	log zerolog.Logger
}

func NewAccountCreator(idp ports.IdentityProvider, log zerolog.Logger) *AccountCreator {
	return &AccountCreator{idp: idp, log: log}
}

// CreateAccount signs the user up with role-tagged metadata. Failures are
// returned as *domain.AccountError.
func (c *AccountCreator) CreateAccount(ctx context.Context, req domain.SignupRequest) (*domain.AccountRecord, error) {
	id, err := c.idp.SignUp(ctx, req.Email, req.Password, ports.SignupMetadata{
		Role:     req.Role,
		FullName: req.DisplayName,
	})
	if err != nil {
		ae := ClassifyProviderError(err)
		c.log.Warn().
			Err(err).
			Str("email", req.Email).
			Str("role", req.Role).
			Str("kind", string(ae.Kind)).
			Msg("identity provider signup failed")
		return nil, ae
	}
	if id == "" {
		c.log.Error().Str("email", req.Email).Msg("identity provider returned no account id")
		return nil, &domain.AccountError{
			Kind:    domain.AccountUnknown,
			Message: "identity provider returned no account id",
		}
	}

	c.log.Info().Str("account_id", id).Str("role", req.Role).Msg("account created")
	return &domain.AccountRecord{AccountID: id, Email: req.Email}, nil
}
