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

// ApplicationFields is what the applicant typed into the instructor form.
type ApplicationFields struct {
	Email   string
	Name    string
	Details domain.InstructorDetails
}

// ApplicationWriter inserts the instructor application once the profile is verified.
type ApplicationWriter struct {
	store ports.ApplicationStore
	now   Clock
	log   zerolog.Logger
}

func NewApplicationWriter(store ports.ApplicationStore, log zerolog.Logger) *ApplicationWriter {
	return &ApplicationWriter{store: store, now: time.Now, log: log}
}

// SubmitApplication makes a single insert with status pending. A failure
// never touches the account or profile that already exist.
func (w *ApplicationWriter) SubmitApplication(ctx context.Context, accountID string, f ApplicationFields) (*domain.InstructorApplication, error) {
	app := &domain.InstructorApplication{
		UserID:       accountID,
		Email:        f.Email,
		Name:         f.Name,
		Expertise:    f.Details.Expertise,
		Experience:   f.Details.Experience,
		Organization: f.Details.Organization,
		Bio:          f.Details.Bio,
		Motivation:   f.Details.Motivation,
		Status:       domain.ApplicationPending,
		SubmittedAt:  w.now().UTC(),
	}

	created, err := w.store.Insert(ctx, app)
	if err != nil {
		kind := classifyApplicationFailure(err)
		logStoreError(w.log.Error(), err).
			Str("account_id", accountID).
			Str("kind", string(kind)).
			Msg("instructor application insert failed")
		return nil, &domain.ApplicationError{Kind: kind, AccountID: accountID, Err: err}
	}

	w.log.Info().Str("account_id", accountID).Str("application_id", created.ID).Msg("instructor application submitted")
	return created, nil
}

func classifyApplicationFailure(err error) domain.ApplicationErrorKind {
	var se *ports.StoreError
	if !errors.As(err, &se) {
		return domain.ApplicationUnknown
	}
	msg := strings.ToLower(se.Message)
	switch {
	case se.Code == ports.CodeUndefinedTable, se.Code == ports.CodeSchemaCacheTable,
		strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return domain.ApplicationSchemaMissing
	case se.Code == ports.CodeUndefinedColumn, se.Code == ports.CodeSchemaCacheColumn,
		strings.Contains(msg, "column") && (strings.Contains(msg, "does not exist") || strings.Contains(msg, "could not find")):
		return domain.ApplicationSchemaMismatch
	}
	return domain.ApplicationUnknown
}
