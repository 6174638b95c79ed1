package models

import (
	"slices"
	"time"
)

// Post represents one scheduled LFG event. It is keyed by the ID of the
// Discord thread that renders it, so the row and its external
// representation share an identifier.
type Post struct {
	ID           string    `db:"id"` // thread ID, unique
	GuildID      string    `db:"guild_id"`
	OwnerID      string    `db:"owner_id"`
	Activity     string    `db:"activity"`
	Description  string    `db:"description"`
	StartTime    time.Time `db:"start_time"`
	FireteamSize int       `db:"fireteam_size"`
	Fireteam     []string  `db:"fireteam"`
	Alternates   []string  `db:"alternates"`

	// ScheduleChannel and AltMessage locate the mirrored summary
	// message in the guild's schedule channel. Both set or both empty.
	ScheduleChannel string `db:"schedule_channel"`
	AltMessage      string `db:"alt_message"`

	ReminderSent bool `db:"reminder_sent"`
}

// IsFull reports whether the fireteam has reached capacity.
func (p *Post) IsFull() bool {
	return len(p.Fireteam) >= p.FireteamSize
}

// IsMember reports whether the user is in the fireteam or the alternates.
func (p *Post) IsMember(userID string) bool {
	return slices.Contains(p.Fireteam, userID) || slices.Contains(p.Alternates, userID)
}

// Join adds the user to the post. The user lands in the alternates when
// they ask for it or when the fireteam is full, otherwise in the
// fireteam. A user already present in the target list is left where
// they are. Returns whether the user ended up as an alternate.
func (p *Post) Join(userID string, alternative bool) (alternate bool) {
	if alternative || p.IsFull() {
		if !slices.Contains(p.Alternates, userID) && !slices.Contains(p.Fireteam, userID) {
			p.Alternates = append(p.Alternates, userID)
		}
		return slices.Contains(p.Alternates, userID)
	}

	if !slices.Contains(p.Fireteam, userID) {
		// Moving from the waiting list into a free slot counts as a
		// fresh join, so clear any alternate entry first.
		p.Alternates = slices.DeleteFunc(p.Alternates, func(id string) bool { return id == userID })
		p.Fireteam = append(p.Fireteam, userID)
	}
	return false
}

// Leave removes the user from both lists. Removing an absent user is a
// no-op, never an error. A freed fireteam slot stays free; alternates
// are not promoted automatically.
func (p *Post) Leave(userID string) {
	p.Fireteam = slices.DeleteFunc(p.Fireteam, func(id string) bool { return id == userID })
	p.Alternates = slices.DeleteFunc(p.Alternates, func(id string) bool { return id == userID })
}

// HasMirror reports whether the post has a schedule-channel summary
// message to keep in sync.
func (p *Post) HasMirror() bool {
	return p.ScheduleChannel != "" && p.AltMessage != ""
}
