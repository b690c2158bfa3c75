package ports

import (
	"context"
	"time"
)

// CooldownStore holds the activeUntil timestamp of each client's rate-limit cooldown.
type CooldownStore interface {
	// Get returns ok=false when no cooldown is recorded for key.
	Get(ctx context.Context, key string) (activeUntil time.Time, ok bool, err error)
	Set(ctx context.Context, key string, activeUntil time.Time) error
	Delete(ctx context.Context, key string) error
}
