package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusly/lms-platform/internal/core/ports"
)

const (
	codeUnauthorized  = 13
	codeNamespaceGone = 26
	codeDocValidation = 121
)

// toStoreError maps driver errors onto the SQLSTATE vocabulary the services
// classify on, so a Mongo deployment yields the same failure kinds as Postgres.
func toStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	storeErr := &ports.StoreError{Op: op, Message: err.Error(), Err: err}

	var serverErr mongo.ServerError
	switch {
	case mongo.IsDuplicateKeyError(err):
		storeErr.Code = ports.CodeUniqueViolation
	case errors.As(err, &serverErr) && serverErr.HasErrorCode(codeUnauthorized):
		storeErr.Code = ports.CodeInsufficientPrivilege
		storeErr.Hint = "grant the service user readWrite on the database"
	case errors.As(err, &serverErr) && serverErr.HasErrorCode(codeNamespaceGone):
		storeErr.Code = ports.CodeUndefinedTable
	case errors.As(err, &serverErr) && serverErr.HasErrorCode(codeDocValidation):
		storeErr.Code = ports.CodeUndefinedColumn
		storeErr.Details = "document failed collection schema validation"
	}
	return storeErr
}
