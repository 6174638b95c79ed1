package lfg

import (
	"context"
	"errors"
	"fmt"

	"lfg-bot/models"

	"github.com/bwmarrin/discordgo"
)

// CreateInput carries the submitted creation form.
type CreateInput struct {
	GuildID      string
	UserID       string
	Activity     string
	Description  string
	StartTime    string // wall clock, organizer's timezone
	FireteamSize int
}

// Create opens a new LFG post: a forum thread in the guild's LFG
// channel holding the rendered embed and action buttons, an optional
// mirror in the schedule channel, and the persisted row keyed by the
// thread's ID. The organizer starts as the first fireteam member.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Post, error) {
	guild, err := s.Guilds.Guild(ctx, in.GuildID)
	if errors.Is(err, ErrGuildNotSetup) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guild setup for %s: %w", in.GuildID, err)
	}

	loc := s.UserLocation(ctx, in.UserID)
	start, err := ParseStartTime(loc, in.StartTime)
	if err != nil {
		return nil, err
	}

	if in.FireteamSize < 1 {
		return nil, &InvalidInputError{Field: "fireteam size", Value: fmt.Sprint(in.FireteamSize), Hint: "must be a positive number"}
	}

	description := truncateDescription(in.Description, in.Activity)

	post := &models.Post{
		GuildID:      in.GuildID,
		OwnerID:      in.UserID,
		Activity:     in.Activity,
		Description:  description,
		StartTime:    start,
		FireteamSize: in.FireteamSize,
		Fireteam:     []string{in.UserID},
	}

	ownerName := s.Messenger.DisplayName(in.GuildID, in.UserID)

	threadID, err := s.Messenger.CreateThread(guild.ChannelID, ThreadTitle(in.Activity, start, loc), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{ThreadEmbed(post, ownerName)},
		Components: []discordgo.MessageComponent{MainButtons()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create thread for post in guild %s: %w", in.GuildID, err)
	}
	post.ID = threadID

	ping := fmt.Sprintf("<@%s>", in.UserID)
	if guild.RoleID != "" {
		ping = fmt.Sprintf("<@&%s> %s", guild.RoleID, ping)
	}
	s.announce(threadID, ping)

	if guild.ScheduleChannel != "" {
		messageID, err := s.Messenger.SendEmbed(guild.ScheduleChannel, MirrorEmbed(post, ownerName))
		if err != nil {
			return nil, fmt.Errorf("failed to mirror post %s to schedule channel: %w", threadID, err)
		}
		post.ScheduleChannel = guild.ScheduleChannel
		post.AltMessage = messageID
	}

	if err := s.Posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post %s: %w", threadID, err)
	}
	return post, nil
}

// Setup stores the guild's LFG configuration.
func (s *Service) Setup(ctx context.Context, guild *models.Guild) error {
	if err := s.Guilds.SaveGuild(ctx, guild); err != nil {
		return fmt.Errorf("failed to save setup for guild %s: %w", guild.GuildID, err)
	}
	return nil
}
