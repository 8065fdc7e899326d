package types

import (
	"strconv"

	"github.com/uptrace/bun"
)

// BlacklistMode packs the two blacklist switches into one value for the cache.
type BlacklistMode int

const (
	// BlacklistBlockCommands stops bot commands in the target.
	BlacklistBlockCommands BlacklistMode = 1 << iota
	// BlacklistBlockProxies stops message proxying in the target.
	BlacklistBlockProxies
)

// BlacklistBitfield encodes the two switches. Commands use bit 1, proxies bit 2.
func BlacklistBitfield(blockProxies, blockCommands bool) BlacklistMode {
	var mode BlacklistMode
	if blockCommands {
		mode |= BlacklistBlockCommands
	}

	if blockProxies {
		mode |= BlacklistBlockProxies
	}

	return mode
}

// ParseBlacklistMode reads a mode stored as a decimal string.
func ParseBlacklistMode(s string) (BlacklistMode, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	return BlacklistMode(n), nil
}

// BlocksCommands reports whether commands are blocked.
func (m BlacklistMode) BlocksCommands() bool {
	return m&BlacklistBlockCommands != 0
}

// BlocksProxies reports whether proxying is blocked.
func (m BlacklistMode) BlocksProxies() bool {
	return m&BlacklistBlockProxies != 0
}

// String returns the decimal form stored in the cache.
func (m BlacklistMode) String() string {
	return strconv.Itoa(int(m))
}

// BlacklistEntry blocks the bot in a channel or for a user within one server.
type BlacklistEntry struct {
	bun.BaseModel `bun:"table:blacklist,alias:bl"`

	ID            string `bun:"id,pk"`        // Channel or user ID
	ServerID      string `bun:"server_id,pk"` // Guild the entry applies to
	IsChannel     bool   `bun:"is_channel,notnull"`
	BlockProxies  bool   `bun:"block_proxies,notnull"`
	BlockCommands bool   `bun:"block_commands,notnull"`
}

// Mode returns the packed form of the entry's switches.
func (e *BlacklistEntry) Mode() BlacklistMode {
	return BlacklistBitfield(e.BlockProxies, e.BlockCommands)
}

// GlobalBlacklist bans a user from the bot everywhere.
type GlobalBlacklist struct {
	bun.BaseModel `bun:"table:global_blacklist,alias:gb"`

	UserID string `bun:"user_id,pk"`
}
