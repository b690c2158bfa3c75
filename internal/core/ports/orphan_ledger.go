package ports

import (
	"context"

	"github.com/campusly/lms-platform/internal/core/domain"
)

// OrphanLedger records provider accounts that have no profile yet.
type OrphanLedger interface {
	// Record adds the account or merges into its entry: attempts accumulate,
	// the earliest first_seen wins, reason and last_attempt are replaced.
	Record(ctx context.Context, o *domain.OrphanedAccount) error
	// List returns up to limit entries, least recently attempted first.
	// limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*domain.OrphanedAccount, error)
	Resolve(ctx context.Context, accountID string) error
}

// OrphanReconciler retries the profile step for one orphaned account.
type OrphanReconciler interface {
	Reconcile(ctx context.Context, o *domain.OrphanedAccount) error
}
