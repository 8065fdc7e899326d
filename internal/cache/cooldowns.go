package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// CooldownKeyPrefix namespaces cooldown timers.
// Keys are formatted as "cooldowns/{key}".
const CooldownKeyPrefix = "cooldowns/"

// Cooldowns stores expiring timers. The stored value is the expiry instant in
// unix milliseconds and Redis expires the key at the same moment.
type Cooldowns struct {
	client rueidis.Client
}

// Get returns the expiry stored for key.
// Returns false if no cooldown is active.
func (c *Cooldowns) Get(ctx context.Context, key string) (time.Time, bool, error) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(CooldownKeyPrefix+key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return time.Time{}, false, nil
		}

		return time.Time{}, false, fmt.Errorf("failed to get cooldown %s: %w", key, err)
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid cooldown value for %s: %w", key, err)
	}

	return time.UnixMilli(ms), true, nil
}

// Set starts a cooldown of ttl for key, replacing any existing one.
func (c *Cooldowns) Set(ctx context.Context, key string, ttl time.Duration) error {
	expiry := time.Now().Add(ttl).UnixMilli()

	err := c.client.Do(ctx, c.client.B().Set().
		Key(CooldownKeyPrefix+key).
		Value(strconv.FormatInt(expiry, 10)).
		PxMilliseconds(ttl.Milliseconds()).
		Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to set cooldown %s: %w", key, err)
	}

	return nil
}

// Update resets the remaining time-to-live of key to ttl without touching
// the stored expiry value. Returns false if the key does not exist.
func (c *Cooldowns) Update(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	updated, err := c.client.Do(ctx, c.client.B().Pexpire().
		Key(CooldownKeyPrefix+key).
		Milliseconds(ttl.Milliseconds()).
		Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to update cooldown %s: %w", key, err)
	}

	return updated == 1, nil
}
