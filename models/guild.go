package models

// Guild holds the per-guild LFG setup: which forum channel hosts posts,
// an optional role to ping on new posts, and an optional channel where
// a summary of each post is mirrored.
type Guild struct {
	GuildID         string `db:"guild_id"`
	ChannelID       string `db:"channel_id"`
	RoleID          string `db:"role_id"`          // optional
	ScheduleChannel string `db:"schedule_channel"` // optional
}
