package lfg

import (
	"github.com/bwmarrin/discordgo"
)

// Messenger is the messaging-platform boundary. The production
// implementation wraps a discordgo session; tests substitute a fake.
//
// DeleteThread returns ErrChannelGone and DeleteMessage / EditEmbed
// return ErrMessageGone when the target no longer exists, so callers
// can treat "already gone" as success during reconciliation.
type Messenger interface {
	CreateThread(channelID, name string, msg *discordgo.MessageSend) (threadID string, err error)
	SendMessage(channelID, content string) (messageID string, err error)
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
	RenameThread(threadID, name string) error
	ArchiveThread(threadID string) error
	DeleteThread(threadID, reason string) error
	DeleteMessage(channelID, messageID, reason string) error
	DirectMessage(userID string, embed *discordgo.MessageEmbed) error
	DisplayName(guildID, userID string) string
}
