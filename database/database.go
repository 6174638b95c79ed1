// Package database provides the concrete storage adapters behind the
// lfg storage contract: sqlite for single-host deployments and
// postgres for shared ones. Both encode the membership lists as
// comma-joined ID strings and store start times as unix seconds.
package database

import (
	"database/sql"
	"strings"

	"lfg-bot/lfg"
)

// Store is the full storage surface one adapter provides.
type Store interface {
	lfg.PostStore
	lfg.TimezoneStore
	lfg.GuildStore
	lfg.Sweeper
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// nullable maps an optional column: empty string persists as NULL.
func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
