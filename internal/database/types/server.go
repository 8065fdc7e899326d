package types

import "github.com/uptrace/bun"

// Server stores per-guild settings.
type Server struct {
	bun.BaseModel `bun:"table:servers,alias:s"`

	ID         string  `bun:"id,pk"`
	Prefix     string  `bun:"prefix,notnull"`
	Lang       string  `bun:"lang,notnull"` // What members are called, e.g. "tupper"
	LangPlural *string `bun:"lang_plural"`  // Plural override for Lang
	LogChannel *string `bun:"log_channel"`  // Channel receiving proxy logs
}

// Webhook is a channel webhook the bot proxies through.
type Webhook struct {
	bun.BaseModel `bun:"table:webhooks,alias:w"`

	ID        string `bun:"id,pk"`
	ChannelID string `bun:"channel_id,notnull"`
	Token     string `bun:"token,notnull"`
}
