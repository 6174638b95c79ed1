package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lfg-bot/lfg"
	"lfg-bot/models"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx driver
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    guild_id TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    activity TEXT NOT NULL,
    description TEXT NOT NULL,
    start_time BIGINT NOT NULL,
    fireteam_size INT NOT NULL,
    fireteam TEXT NOT NULL DEFAULT '',
    alternates TEXT NOT NULL DEFAULT '',
    schedule_channel TEXT,
    alt_message TEXT,
    reminder_sent BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS timezones (
    user_id TEXT PRIMARY KEY,
    region TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS guilds (
    guild_id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL,
    role_id TEXT,
    schedule_channel TEXT
);`

// PostgresStore backs the LFG storage contract with Postgres, for
// deployments where the bot does not own its host's disk.
type PostgresStore struct {
	db *sql.DB
}

// InitPostgres connects to the database URL and ensures the schema.
func InitPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const postgresSelectPost = `
SELECT id, guild_id, owner_id, activity, description, start_time, fireteam_size,
       fireteam, alternates, schedule_channel, alt_message, reminder_sent
FROM posts`

const postgresUpsertPost = `
INSERT INTO posts (
    id, guild_id, owner_id, activity, description, start_time, fireteam_size,
    fireteam, alternates, schedule_channel, alt_message, reminder_sent
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    guild_id = EXCLUDED.guild_id,
    owner_id = EXCLUDED.owner_id,
    activity = EXCLUDED.activity,
    description = EXCLUDED.description,
    start_time = EXCLUDED.start_time,
    fireteam_size = EXCLUDED.fireteam_size,
    fireteam = EXCLUDED.fireteam,
    alternates = EXCLUDED.alternates,
    schedule_channel = EXCLUDED.schedule_channel,
    alt_message = EXCLUDED.alt_message,
    reminder_sent = EXCLUDED.reminder_sent`

func pgSavePost(ctx context.Context, db execer, post *models.Post) error {
	_, err := db.ExecContext(ctx, postgresUpsertPost,
		post.ID, post.GuildID, post.OwnerID, post.Activity, post.Description,
		post.StartTime.Unix(), post.FireteamSize,
		joinIDs(post.Fireteam), joinIDs(post.Alternates),
		nullable(post.ScheduleChannel), nullable(post.AltMessage), post.ReminderSent,
	)
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", post.ID, err)
	}
	return nil
}

// Row fetches a single post by its thread ID.
func (s *PostgresStore) Row(ctx context.Context, id string) (*models.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx, postgresSelectPost+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lfg.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post %s: %w", id, err)
	}
	return post, nil
}

// Save inserts or replaces the whole post row.
func (s *PostgresStore) Save(ctx context.Context, post *models.Post) error {
	return pgSavePost(ctx, s.db, post)
}

// Delete removes the post row. Deleting an absent row is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return nil
}

// Owner returns the post's owner ID.
func (s *PostgresStore) Owner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, "SELECT owner_id FROM posts WHERE id = $1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", lfg.ErrPostNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query owner of post %s: %w", id, err)
	}
	return owner, nil
}

// Update applies fn to the post under a row lock: the SELECT ... FOR
// UPDATE holds the row until commit, so concurrent read-modify-write
// cycles serialize.
func (s *PostgresStore) Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	post, err := scanPost(tx.QueryRowContext(ctx, postgresSelectPost+" WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lfg.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post %s: %w", id, err)
	}

	if err := fn(post); err != nil {
		return nil, err
	}

	if err := pgSavePost(ctx, tx, post); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update of post %s: %w", id, err)
	}
	return post, nil
}

// Region returns the user's saved timezone region, or "" when unset.
func (s *PostgresStore) Region(ctx context.Context, userID string) (string, error) {
	var region string
	err := s.db.QueryRowContext(ctx, "SELECT region FROM timezones WHERE user_id = $1", userID).Scan(&region)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query timezone for user %s: %w", userID, err)
	}
	return region, nil
}

// SaveRegion stores the user's timezone, overwriting any previous one.
func (s *PostgresStore) SaveRegion(ctx context.Context, userID, region string) error {
	_, err := s.db.ExecContext(ctx, `
    INSERT INTO timezones (user_id, region) VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE SET region = EXCLUDED.region`, userID, region)
	if err != nil {
		return fmt.Errorf("failed to save timezone for user %s: %w", userID, err)
	}
	return nil
}

// Guild returns the guild's LFG setup.
func (s *PostgresStore) Guild(ctx context.Context, guildID string) (*models.Guild, error) {
	var guild models.Guild
	var roleID, scheduleChannel sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT guild_id, channel_id, role_id, schedule_channel FROM guilds WHERE guild_id = $1", guildID).
		Scan(&guild.GuildID, &guild.ChannelID, &roleID, &scheduleChannel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lfg.ErrGuildNotSetup
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query setup for guild %s: %w", guildID, err)
	}
	guild.RoleID = roleID.String
	guild.ScheduleChannel = scheduleChannel.String
	return &guild, nil
}

// SaveGuild stores the guild's LFG setup, overwriting any previous one.
func (s *PostgresStore) SaveGuild(ctx context.Context, guild *models.Guild) error {
	_, err := s.db.ExecContext(ctx, `
    INSERT INTO guilds (guild_id, channel_id, role_id, schedule_channel)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (guild_id) DO UPDATE SET
        channel_id = EXCLUDED.channel_id,
        role_id = EXCLUDED.role_id,
        schedule_channel = EXCLUDED.schedule_channel`,
		guild.GuildID, guild.ChannelID, nullable(guild.RoleID), nullable(guild.ScheduleChannel))
	if err != nil {
		return fmt.Errorf("failed to save setup for guild %s: %w", guild.GuildID, err)
	}
	return nil
}

// DueReminders returns posts starting within lead of now whose
// reminder has not been sent.
func (s *PostgresStore) DueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*models.Post, error) {
	return s.queryPosts(ctx,
		postgresSelectPost+" WHERE NOT reminder_sent AND start_time > $1 AND start_time <= $2",
		now.Unix(), now.Add(lead).Unix())
}

// MarkReminderSent records that the post's reminder went out.
func (s *PostgresStore) MarkReminderSent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE posts SET reminder_sent = TRUE WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to mark reminder sent for post %s: %w", id, err)
	}
	return nil
}

// StartedBefore returns posts whose start time is before cutoff.
func (s *PostgresStore) StartedBefore(ctx context.Context, cutoff time.Time) ([]*models.Post, error) {
	return s.queryPosts(ctx, postgresSelectPost+" WHERE start_time < $1", cutoff.Unix())
}

func (s *PostgresStore) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
