package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const (
	orphansKey      = "signup:orphans"
	orphanTxRetries = 3
)

// OrphanLedger keeps orphaned accounts in a single hash, one JSON field per account id.
type OrphanLedger struct {
	client *redis.Client
}

func NewOrphanLedger(client *redis.Client) *OrphanLedger {
	return &OrphanLedger{client: client}
}

// Record merges o into the existing entry inside a WATCH transaction:
// attempts accumulate and first_seen keeps the earliest value.
func (l *OrphanLedger) Record(ctx context.Context, o *domain.OrphanedAccount) error {
	txf := func(tx *redis.Tx) error {
		entry := *o
		raw, err := tx.HGet(ctx, orphansKey, o.AccountID).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var prev domain.OrphanedAccount
			if err := json.Unmarshal([]byte(raw), &prev); err != nil {
				return fmt.Errorf("decode orphan %s: %w", o.AccountID, err)
			}
			entry = mergeOrphan(prev, *o)
		}

		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, orphansKey, o.AccountID, payload)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < orphanTxRetries; i++ {
		err = l.client.Watch(ctx, txf, orphansKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("orphan record: %w", err)
	}
	return nil
}

// List returns the least recently attempted orphans first, so entries that
// keep failing rotate to the back of the sweep.
func (l *OrphanLedger) List(ctx context.Context, limit int) ([]*domain.OrphanedAccount, error) {
	fields, err := l.client.HGetAll(ctx, orphansKey).Result()
	if err != nil {
		return nil, fmt.Errorf("orphan list: %w", err)
	}

	out := make([]*domain.OrphanedAccount, 0, len(fields))
	for id, raw := range fields {
		var o domain.OrphanedAccount
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("decode orphan %s: %w", id, err)
		}
		out = append(out, &o)
	}
	sortOrphans(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *OrphanLedger) Resolve(ctx context.Context, accountID string) error {
	if err := l.client.HDel(ctx, orphansKey, accountID).Err(); err != nil {
		return fmt.Errorf("orphan resolve: %w", err)
	}
	return nil
}

func mergeOrphan(prev, next domain.OrphanedAccount) domain.OrphanedAccount {
	merged := next
	merged.Attempts = prev.Attempts + next.Attempts
	if !prev.FirstSeen.IsZero() && prev.FirstSeen.Before(next.FirstSeen) {
		merged.FirstSeen = prev.FirstSeen
	}
	return merged
}

func sortOrphans(out []*domain.OrphanedAccount) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastAttempt.Equal(out[j].LastAttempt) {
			return out[i].LastAttempt.Before(out[j].LastAttempt)
		}
		return out[i].FirstSeen.Before(out[j].FirstSeen)
	})
}
