package lfg

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lfg-bot/models"

	"github.com/bwmarrin/discordgo"
)

const (
	reminderLead = 30 * time.Minute
	archiveAfter = 2 * time.Hour
	deleteAfter  = 30 * 24 * time.Hour
)

// SendReminders DMs every fireteam member of posts starting within the
// next 30 minutes, at most once per post. Individual DM failures are
// logged and skipped; one member with closed DMs should not block the
// rest.
func (s *Service) SendReminders(ctx context.Context, now time.Time) error {
	posts, err := s.Janitor.DueReminders(ctx, now, reminderLead)
	if err != nil {
		return fmt.Errorf("failed to query due reminders: %w", err)
	}

	for _, post := range posts {
		embed := reminderEmbed(post)
		for _, userID := range post.Fireteam {
			if err := s.Messenger.DirectMessage(userID, embed); err != nil {
				log.Printf("Failed to DM reminder for post %s to user %s: %v", post.ID, userID, err)
			}
		}
		if err := s.Janitor.MarkReminderSent(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to mark reminder sent for post %s: %w", post.ID, err)
		}
	}
	return nil
}

// ExpireOld sweeps posts whose start time has passed: the schedule
// mirror is removed, the thread archived two hours after start, and
// the whole post reconciled away thirty days after start. Every
// external step absorbs "already gone".
func (s *Service) ExpireOld(ctx context.Context, now time.Time) error {
	posts, err := s.Janitor.StartedBefore(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to query expired posts: %w", err)
	}

	for _, post := range posts {
		if now.After(post.StartTime.Add(deleteAfter)) {
			if err := s.Delete(ctx, post.ID); err != nil {
				return err
			}
			continue
		}

		if post.HasMirror() {
			err := s.Messenger.DeleteMessage(post.ScheduleChannel, post.AltMessage, "Expired LFG post")
			if err != nil && !errors.Is(err, ErrMessageGone) {
				return fmt.Errorf("failed to delete expired schedule message for post %s: %w", post.ID, err)
			}
			if _, err := s.Posts.Update(ctx, post.ID, func(p *models.Post) error {
				p.ScheduleChannel = ""
				p.AltMessage = ""
				return nil
			}); err != nil {
				return fmt.Errorf("failed to clear mirror for post %s: %w", post.ID, err)
			}
		}

		if now.After(post.StartTime.Add(archiveAfter)) {
			if err := s.Messenger.ArchiveThread(post.ID); err != nil && !errors.Is(err, ErrChannelGone) {
				return fmt.Errorf("failed to archive thread %s: %w", post.ID, err)
			}
		}
	}
	return nil
}

func reminderEmbed(post *models.Post) *discordgo.MessageEmbed {
	timestamp := post.StartTime.Unix()
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - <t:%d>", post.Activity, timestamp),
		Color:       0x3498db,
		Description: fmt.Sprintf("Starting <t:%d:R>\nThread: <#%s>", timestamp, post.ID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Joined", Value: mentionList(post.Fireteam)},
		},
	}
}
