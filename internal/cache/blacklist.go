package cache

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

// BlacklistKey is the hash holding one field per blacklisted channel.
const BlacklistKey = "blacklist"

// Blacklist stores per-channel blacklist flags in a single hash.
// Values are opaque to the cache; see types.BlacklistBitfield for the encoding.
type Blacklist struct {
	client rueidis.Client
}

// Get returns the flag stored for channelID.
// Returns false if the channel has no entry.
func (b *Blacklist) Get(ctx context.Context, channelID string) (string, bool, error) {
	val, err := b.client.Do(ctx, b.client.B().Hget().Key(BlacklistKey).Field(channelID).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to get blacklist for channel %s: %w", channelID, err)
	}

	return val, true, nil
}

// Set stores value for channelID.
func (b *Blacklist) Set(ctx context.Context, channelID, value string) error {
	err := b.client.Do(ctx, b.client.B().Hset().Key(BlacklistKey).FieldValue().FieldValue(channelID, value).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to set blacklist for channel %s: %w", channelID, err)
	}

	return nil
}

// Delete removes the entry for channelID.
func (b *Blacklist) Delete(ctx context.Context, channelID string) error {
	if err := b.client.Do(ctx, b.client.B().Hdel().Key(BlacklistKey).Field(channelID).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete blacklist for channel %s: %w", channelID, err)
	}

	return nil
}
