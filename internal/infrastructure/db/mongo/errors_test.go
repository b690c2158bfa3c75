package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusly/lms-platform/internal/core/ports"
)

func TestToStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{
			name: "unauthorized command",
			err:  mongo.CommandError{Code: 13, Message: "not authorized on lms to execute command"},
			code: ports.CodeInsufficientPrivilege,
		},
		{
			name: "duplicate key",
			err:  mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}},
			code: ports.CodeUniqueViolation,
		},
		{
			name: "namespace not found",
			err:  mongo.CommandError{Code: 26, Message: "ns does not exist"},
			code: ports.CodeUndefinedTable,
		},
		{
			name: "schema validation",
			err:  mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}}},
			code: ports.CodeUndefinedColumn,
		},
		{
			name: "plain network error",
			err:  errors.New("connection reset"),
			code: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := toStoreError("op", tc.err)

			var storeErr *ports.StoreError
			if !errors.As(err, &storeErr) {
				t.Fatalf("expected *ports.StoreError, got %T", err)
			}
			if storeErr.Code != tc.code {
				t.Errorf("expected code %q, got %q", tc.code, storeErr.Code)
			}
			if storeErr.Err == nil {
				t.Error("expected the driver error to be wrapped")
			}
		})
	}
}

func TestToStoreError_Nil(t *testing.T) {
	if err := toStoreError("op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
