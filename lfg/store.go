package lfg

import (
	"context"
	"time"

	"lfg-bot/models"
)

// PostStore is the persistence contract for LFG posts. Any storage
// engine implementing it can back the service; business logic never
// touches a concrete driver.
//
// Row and Owner report ErrPostNotFound when no row exists; Delete of
// an absent row is a no-op, so the deletion protocol stays idempotent.
type PostStore interface {
	Row(ctx context.Context, id string) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	Owner(ctx context.Context, id string) (string, error)

	// Update applies fn to the row inside a single write transaction,
	// so concurrent read-modify-write cycles on the same post
	// serialize at the storage boundary. Returning an error from fn
	// aborts the transaction.
	Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error)
}

// TimezoneStore persists each user's saved scheduling timezone.
// Region returns an empty string when the user has none saved.
type TimezoneStore interface {
	Region(ctx context.Context, userID string) (string, error)
	SaveRegion(ctx context.Context, userID, region string) error
}

// GuildStore persists the per-guild LFG setup.
// Guild reports ErrGuildNotSetup when the guild has none.
type GuildStore interface {
	Guild(ctx context.Context, guildID string) (*models.Guild, error)
	SaveGuild(ctx context.Context, guild *models.Guild) error
}

// Sweeper is the housekeeping view of the post table, consumed by the
// cron sweeps.
type Sweeper interface {
	// DueReminders returns posts starting within lead of now whose
	// reminder has not been sent yet.
	DueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*models.Post, error)
	MarkReminderSent(ctx context.Context, id string) error

	// StartedBefore returns posts whose start time is before cutoff.
	StartedBefore(ctx context.Context, cutoff time.Time) ([]*models.Post, error)
}
