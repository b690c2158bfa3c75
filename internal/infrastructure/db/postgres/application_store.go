package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const (
	insertApplicationSQL = `
		INSERT INTO instructor_applications
			(user_id, email, name, expertise, experience, organization, bio, motivation, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	selectApplicationSQL = `
		SELECT id, user_id, email, name, expertise, experience, organization, bio, motivation,
			status, submitted_at, reviewed_at, reviewed_by
		FROM instructor_applications`

	updateApplicationStatusSQL = `
		UPDATE instructor_applications
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4 AND status = $5`
)

// ApplicationStore implements ports.ApplicationStore on instructor_applications.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) Insert(ctx context.Context, app *domain.InstructorApplication) (*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id string
	err := s.db.QueryRowContext(ctx, insertApplicationSQL,
		app.UserID, app.Email, app.Name, app.Expertise, app.Experience,
		nullString(app.Organization), app.Bio, app.Motivation, string(app.Status), app.SubmittedAt,
	).Scan(&id)
	if err != nil {
		return nil, toStoreError("insert application", err)
	}

	created := *app
	created.ID = id
	return &created, nil
}

func (s *ApplicationStore) FindByID(ctx context.Context, id string) (*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	app, err := scanApplication(s.db.QueryRowContext(ctx, selectApplicationSQL+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, toStoreError("find application", err)
	}
	return app, nil
}

func (s *ApplicationStore) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = s.db.QueryContext(ctx, selectApplicationSQL+" ORDER BY submitted_at DESC")
	} else {
		rows, err = s.db.QueryContext(ctx, selectApplicationSQL+" WHERE status = $1 ORDER BY submitted_at DESC", string(status))
	}
	if err != nil {
		return nil, toStoreError("list applications", err)
	}
	defer rows.Close()

	var out []*domain.InstructorApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, toStoreError("list applications", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, toStoreError("list applications", err)
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on status; a concurrent review makes it
// affect zero rows.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewer string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, updateApplicationStatusSQL, string(to), reviewer, at, id, string(from))
	if err != nil {
		return toStoreError("update application status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return toStoreError("update application status", err)
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*domain.InstructorApplication, error) {
	var (
		app          domain.InstructorApplication
		status       string
		organization sql.NullString
		reviewedAt   sql.NullTime
		reviewedBy   sql.NullString
	)
	err := row.Scan(
		&app.ID, &app.UserID, &app.Email, &app.Name, &app.Expertise, &app.Experience,
		&organization, &app.Bio, &app.Motivation, &status, &app.SubmittedAt, &reviewedAt, &reviewedBy,
	)
	if err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationStatus(status)
	app.Organization = organization.String
	app.ReviewedBy = reviewedBy.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		app.ReviewedAt = &t
	}
	return &app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
