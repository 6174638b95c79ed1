// Package discord adapts a discordgo session to the lfg.Messenger
// boundary, translating Discord's "unknown channel" and "unknown
// message" REST errors into the already-gone error family so the core
// can absorb them during reconciliation.
package discord

import (
	"errors"
	"fmt"

	"lfg-bot/lfg"

	"github.com/bwmarrin/discordgo"
)

// Messenger implements lfg.Messenger over a live Discord session.
type Messenger struct {
	session *discordgo.Session
}

// NewMessenger wraps the session.
func NewMessenger(session *discordgo.Session) *Messenger {
	return &Messenger{session: session}
}

var _ lfg.Messenger = (*Messenger)(nil)

// classify maps Discord REST errors onto lfg's already-gone sentinels.
func classify(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %s", lfg.ErrChannelGone, rest.Message.Message)
		case discordgo.ErrCodeUnknownMessage:
			return fmt.Errorf("%w: %s", lfg.ErrMessageGone, rest.Message.Message)
		}
	}
	return err
}

// CreateThread opens a forum post in the channel and returns the new
// thread's ID. The thread's opening message shares that ID.
func (m *Messenger) CreateThread(channelID, name string, msg *discordgo.MessageSend) (string, error) {
	thread, err := m.session.ForumThreadStartComplex(channelID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: 10080, // one week
	}, msg)
	if err != nil {
		return "", classify(err)
	}
	return thread.ID, nil
}

// SendMessage posts plain content into a channel or thread.
func (m *Messenger) SendMessage(channelID, content string) (string, error) {
	message, err := m.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", classify(err)
	}
	return message.ID, nil
}

// SendEmbed posts an embed into a channel.
func (m *Messenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	message, err := m.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", classify(err)
	}
	return message.ID, nil
}

// EditEmbed replaces the embed on an existing message.
func (m *Messenger) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := m.session.ChannelMessageEditEmbed(channelID, messageID, embed)
	return classify(err)
}

// RenameThread renames a thread.
func (m *Messenger) RenameThread(threadID, name string) error {
	_, err := m.session.ChannelEdit(threadID, &discordgo.ChannelEdit{Name: name})
	return classify(err)
}

// ArchiveThread archives a thread.
func (m *Messenger) ArchiveThread(threadID string) error {
	archived := true
	_, err := m.session.ChannelEdit(threadID, &discordgo.ChannelEdit{Archived: &archived})
	return classify(err)
}

// DeleteThread removes a thread. Returns lfg.ErrChannelGone when it
// was already removed.
func (m *Messenger) DeleteThread(threadID, reason string) error {
	_, err := m.session.ChannelDelete(threadID, discordgo.WithAuditLogReason(reason))
	return classify(err)
}

// DeleteMessage removes a message. Returns lfg.ErrMessageGone when it
// was already removed.
func (m *Messenger) DeleteMessage(channelID, messageID, reason string) error {
	err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithAuditLogReason(reason))
	return classify(err)
}

// DirectMessage DMs an embed to a user.
func (m *Messenger) DirectMessage(userID string, embed *discordgo.MessageEmbed) error {
	channel, err := m.session.UserChannelCreate(userID)
	if err != nil {
		return classify(err)
	}
	_, err = m.session.ChannelMessageSendEmbed(channel.ID, embed)
	return classify(err)
}

// DisplayName resolves the user's guild nickname, falling back to
// their global or account name. Resolution failures fall back to the
// raw ID; rendering should never block on a lookup.
func (m *Messenger) DisplayName(guildID, userID string) string {
	if guildID != "" {
		if member, err := m.session.GuildMember(guildID, userID); err == nil {
			if member.Nick != "" {
				return member.Nick
			}
			if member.User != nil {
				return displayName(member.User)
			}
		}
	}
	if user, err := m.session.User(userID); err == nil {
		return displayName(user)
	}
	return userID
}

func displayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
