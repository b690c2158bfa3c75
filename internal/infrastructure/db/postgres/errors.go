package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/campusly/lms-platform/internal/core/ports"
)

// invalidTextRepresentation is raised when a value does not parse as the
// column type, e.g. a malformed uuid.
const invalidTextRepresentation = "22P02"

func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}

// toStoreError lifts a lib/pq error into ports.StoreError so services can
// classify on SQLSTATE without importing the driver.
func toStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &ports.StoreError{
			Op:      op,
			Code:    string(pqErr.Code),
			Message: pqErr.Message,
			Details: pqErr.Detail,
			Hint:    pqErr.Hint,
			Err:     err,
		}
	}
	return &ports.StoreError{Op: op, Message: err.Error(), Err: err}
}
