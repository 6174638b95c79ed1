package lfg

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lfg-bot/models"
)

// Service implements the LFG operations over injected storage and
// messaging boundaries.
type Service struct {
	Posts     PostStore
	Timezones TimezoneStore
	Guilds    GuildStore
	Janitor   Sweeper
	Messenger Messenger
}

// NewService wires the service. janitor may be nil when the caller
// does not run housekeeping (e.g. tests).
func NewService(posts PostStore, timezones TimezoneStore, guilds GuildStore, janitor Sweeper, messenger Messenger) *Service {
	return &Service{
		Posts:     posts,
		Timezones: timezones,
		Guilds:    guilds,
		Janitor:   janitor,
		Messenger: messenger,
	}
}

// syncEmbeds re-renders the post's thread embed and, when present, the
// schedule-channel mirror. The thread's opening message shares the
// thread's ID. A mirror that was deleted out-of-band is ignored.
func (s *Service) syncEmbeds(post *models.Post) error {
	ownerName := s.Messenger.DisplayName(post.GuildID, post.OwnerID)

	if err := s.Messenger.EditEmbed(post.ID, post.ID, ThreadEmbed(post, ownerName)); err != nil {
		return fmt.Errorf("failed to update thread embed for post %s: %w", post.ID, err)
	}

	if post.HasMirror() {
		err := s.Messenger.EditEmbed(post.ScheduleChannel, post.AltMessage, MirrorEmbed(post, ownerName))
		if err != nil && !errors.Is(err, ErrMessageGone) {
			return fmt.Errorf("failed to update schedule message for post %s: %w", post.ID, err)
		}
	}

	return nil
}

// announce posts a short status line into the thread. Announcement
// failures are logged, not propagated; the membership change has
// already been persisted.
func (s *Service) announce(threadID, content string) {
	if _, err := s.Messenger.SendMessage(threadID, content); err != nil {
		log.Printf("Failed to announce in thread %s: %v", threadID, err)
	}
}

// location resolves the user's saved timezone, defaulting to UTC.
func (s *Service) location(ctx context.Context, userID string) string {
	region, err := s.Timezones.Region(ctx, userID)
	if err != nil {
		log.Printf("Failed to load timezone for user %s: %v", userID, err)
		return "UTC"
	}
	if region == "" {
		return "UTC"
	}
	return region
}
