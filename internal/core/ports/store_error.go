package ports

import "fmt"

// SQLSTATE codes (and their PostgREST equivalents) the workflow distinguishes.
const (
	CodeInsufficientPrivilege = "42501"
	CodeUndefinedTable        = "42P01"
	CodeUndefinedColumn       = "42703"
	CodeUniqueViolation       = "23505"
	CodeSchemaCacheColumn     = "PGRST204"
	CodeSchemaCacheTable      = "PGRST205"
)

// StoreError carries the store's raw error detail across the port boundary.
// Adapters convert driver errors into it so services never see driver types.
type StoreError struct {
	Op      string
	Code    string
	Message string
	Details string
	Hint    string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }
