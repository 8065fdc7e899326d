package types

import (
	"time"

	"github.com/uptrace/bun"
)

// Member is a proxied identity owned by a Discord user.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID           int64      `bun:"id,pk,autoincrement"`
	UserID       string     `bun:"user_id,notnull"`        // Discord ID of the owner
	Name         string     `bun:"name,notnull"`           // Unique per owner, compared case-insensitively
	Position     int        `bun:"position,notnull"`       // Order in the owner's list
	AvatarURL    string     `bun:"avatar_url,notnull"`     // Webhook avatar
	Brackets     []string   `bun:"brackets,array,notnull"` // Flattened prefix/suffix pairs
	Posts        int        `bun:"posts,notnull"`          // Messages proxied so far
	ShowBrackets bool       `bun:"show_brackets,notnull"`  // Keep brackets in proxied text
	Birthday     *time.Time `bun:"birthday,type:date"`
	Description  *string    `bun:"description"`
	Tag          *string    `bun:"tag"`
	GroupID      *int64     `bun:"group_id"`  // Owning group, nil when ungrouped
	GroupPos     *int       `bun:"group_pos"` // Order inside the group
}

// BracketPair is one prefix/suffix combination that triggers a proxy.
type BracketPair struct {
	Prefix string
	Suffix string
}

// BracketPairs splits the flat brackets column into pairs.
// A trailing unpaired entry is treated as a prefix with no suffix.
func (m *Member) BracketPairs() []BracketPair {
	pairs := make([]BracketPair, 0, (len(m.Brackets)+1)/2)
	for i := 0; i < len(m.Brackets); i += 2 {
		pair := BracketPair{Prefix: m.Brackets[i]}
		if i+1 < len(m.Brackets) {
			pair.Suffix = m.Brackets[i+1]
		}

		pairs = append(pairs, pair)
	}

	return pairs
}

// FlattenBrackets converts bracket pairs into the stored column layout.
func FlattenBrackets(pairs []BracketPair) []string {
	flat := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.Prefix, p.Suffix)
	}

	return flat
}
