package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownPrefix = "signup:cooldown:"

// CooldownStore keeps each client's cooldown end as unix millis under a key
// that expires together with the cooldown.
// Key format: signup:cooldown:<client_key>
type CooldownStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewCooldownStore creates a CooldownStore wrapping the given Redis client.
func NewCooldownStore(client *redis.Client) *CooldownStore {
	return &CooldownStore{client: client, now: time.Now}
}

// Get returns ok=false when the key is absent or already expired.
func (s *CooldownStore) Get(ctx context.Context, key string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, cooldownKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cooldown get: %w", err)
	}
	until, err := decodeMillis(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cooldown get: %w", err)
	}
	return until, true, nil
}

// Set records activeUntil. A deadline already in the past deletes the key.
func (s *CooldownStore) Set(ctx context.Context, key string, activeUntil time.Time) error {
	ttl := activeUntil.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}
	if err := s.client.Set(ctx, cooldownKey(key), encodeMillis(activeUntil), ttl).Err(); err != nil {
		return fmt.Errorf("cooldown set: %w", err)
	}
	return nil
}

func (s *CooldownStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, cooldownKey(key)).Err(); err != nil {
		return fmt.Errorf("cooldown delete: %w", err)
	}
	return nil
}

func cooldownKey(key string) string {
	return cooldownPrefix + key
}

func encodeMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func decodeMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cooldown value %q", raw)
	}
	return time.UnixMilli(ms), nil
}
