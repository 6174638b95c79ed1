package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"lfg-bot/lfg"
	"lfg-bot/models"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    guild_id TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    activity TEXT NOT NULL,
    description TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    fireteam_size INTEGER NOT NULL,
    fireteam TEXT NOT NULL DEFAULT '',
    alternates TEXT NOT NULL DEFAULT '',
    schedule_channel TEXT,
    alt_message TEXT,
    reminder_sent INTEGER NOT NULL DEFAULT 0
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

// SQLiteStore backs the LFG storage contract with a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// InitSQLite opens the sqlite database, creating the file and schema
// if needed. Write transactions take the database lock at BEGIN
// (_txlock=immediate), so Update's read-modify-write cycles serialize.
func InitSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteSelectPost = `
SELECT id, guild_id, owner_id, activity, description, start_time, fireteam_size,
       fireteam, alternates, schedule_channel, alt_message, reminder_sent
FROM posts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var startTime int64
	var fireteam, alternates string
	var scheduleChannel, altMessage sql.NullString
	err := row.Scan(
		&post.ID, &post.GuildID, &post.OwnerID, &post.Activity, &post.Description,
		&startTime, &post.FireteamSize, &fireteam, &alternates,
		&scheduleChannel, &altMessage, &post.ReminderSent,
	)
	if err != nil {
		return nil, err
	}

	post.StartTime = time.Unix(startTime, 0).UTC()
	post.Fireteam = splitIDs(fireteam)
	post.Alternates = splitIDs(alternates)
	post.ScheduleChannel = scheduleChannel.String
	post.AltMessage = altMessage.String
	return &post, nil
}

// Row fetches a single post by its thread ID.
func (s *SQLiteStore) Row(ctx context.Context, id string) (*models.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx, sqliteSelectPost+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lfg.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post %s: %w", id, err)
	}
	return post, nil
}

// Save inserts or replaces the whole post row.
func (s *SQLiteStore) Save(ctx context.Context, post *models.Post) error {
	return execSavePost(ctx, s.db, post)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execSavePost(ctx context.Context, db execer, post *models.Post) error {
	_, err := db.ExecContext(ctx, `
    INSERT OR REPLACE INTO posts (
        id, guild_id, owner_id, activity, description, start_time, fireteam_size,
        fireteam, alternates, schedule_channel, alt_message, reminder_sent
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
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

// Delete removes the post row. Deleting an absent row is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return nil
}

// Owner returns the post's owner ID.
func (s *SQLiteStore) Owner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, "SELECT owner_id FROM posts WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", lfg.ErrPostNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query owner of post %s: %w", id, err)
	}
	return owner, nil
}

// Update applies fn to the post inside one immediate write
// transaction: fetch, mutate, write, commit.
func (s *SQLiteStore) Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	post, err := scanPost(tx.QueryRowContext(ctx, sqliteSelectPost+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lfg.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post %s: %w", id, err)
	}

	if err := fn(post); err != nil {
		return nil, err
	}

	if err := execSavePost(ctx, tx, post); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update of post %s: %w", id, err)
	}
	return post, nil
}

// Region returns the user's saved timezone region, or "" when unset.
func (s *SQLiteStore) Region(ctx context.Context, userID string) (string, error) {
	var region string
	err := s.db.QueryRowContext(ctx, "SELECT region FROM timezones WHERE user_id = ?", userID).Scan(&region)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query timezone for user %s: %w", userID, err)
	}
	return region, nil
}

// SaveRegion stores the user's timezone, overwriting any previous one.
func (s *SQLiteStore) SaveRegion(ctx context.Context, userID, region string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO timezones (user_id, region) VALUES (?, ?)", userID, region)
	if err != nil {
		return fmt.Errorf("failed to save timezone for user %s: %w", userID, err)
	}
	return nil
}

// Guild returns the guild's LFG setup.
func (s *SQLiteStore) Guild(ctx context.Context, guildID string) (*models.Guild, error) {
	var guild models.Guild
	var roleID, scheduleChannel sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT guild_id, channel_id, role_id, schedule_channel FROM guilds WHERE guild_id = ?", guildID).
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
func (s *SQLiteStore) SaveGuild(ctx context.Context, guild *models.Guild) error {
	_, err := s.db.ExecContext(ctx, `
    INSERT OR REPLACE INTO guilds (guild_id, channel_id, role_id, schedule_channel)
    VALUES (?, ?, ?, ?)`,
		guild.GuildID, guild.ChannelID, nullable(guild.RoleID), nullable(guild.ScheduleChannel))
	if err != nil {
		return fmt.Errorf("failed to save setup for guild %s: %w", guild.GuildID, err)
	}
	return nil
}

// DueReminders returns posts starting within lead of now whose
// reminder has not been sent.
func (s *SQLiteStore) DueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*models.Post, error) {
	return s.queryPosts(ctx,
		sqliteSelectPost+" WHERE reminder_sent = 0 AND start_time > ? AND start_time <= ?",
		now.Unix(), now.Add(lead).Unix())
}

// MarkReminderSent records that the post's reminder went out.
func (s *SQLiteStore) MarkReminderSent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE posts SET reminder_sent = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to mark reminder sent for post %s: %w", id, err)
	}
	return nil
}

// StartedBefore returns posts whose start time is before cutoff.
func (s *SQLiteStore) StartedBefore(ctx context.Context, cutoff time.Time) ([]*models.Post, error) {
	return s.queryPosts(ctx, sqliteSelectPost+" WHERE start_time < ?", cutoff.Unix())
}

func (s *SQLiteStore) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
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
