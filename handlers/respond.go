package handlers

import (
	"errors"
	"fmt"
	"log"

	"lfg-bot/lfg"
	"lfg-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// interactionUser returns the acting user for guild or DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

// acknowledge closes a component interaction without changing the
// message; the visible effect has already happened in the thread.
func acknowledge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Error acknowledging interaction: %v", err)
	}
}

// respondError renders a domain error as an ephemeral message. User
// mistakes get their specific explanation; anything unexpected gets a
// generic apology and an admin-channel log entry.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, operation string, err error) {
	var denied *lfg.PermissionDeniedError
	var invalid *lfg.InvalidInputError

	switch {
	case errors.As(err, &denied):
		respondEphemeral(s, i, fmt.Sprintf("Permission denied. Only the owner (<@%s>) can use this action.", denied.OwnerID))
	case errors.As(err, &invalid):
		respondEphemeral(s, i, fmt.Sprintf("Invalid %s: %s", invalid.Field, invalid.Hint))
	case errors.Is(err, lfg.ErrPostNotFound):
		respondEphemeral(s, i, "This doesn't look like an LFG post.")
	case errors.Is(err, lfg.ErrGuildNotSetup):
		respondEphemeral(s, i, "Missing setup. Please ask an admin to run `/lfg setup` first.")
	default:
		utils.Error("lfg", operation, err.Error())
		respondEphemeral(s, i, "Something went wrong. Please try again shortly.")
	}
}
