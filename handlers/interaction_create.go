package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"lfg-bot/bot"
	"lfg-bot/lfg"

	"github.com/bwmarrin/discordgo"
)

// ComponentDispatcher routes button and select-menu interactions on
// LFG posts.
func ComponentDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	ctx := context.Background()

	switch i.MessageComponentData().CustomID {
	case "lfg_join":
		if _, err := b.Service.Join(ctx, i.ChannelID, user.ID, false); err != nil {
			respondError(s, i, "join", err)
			return
		}
		acknowledge(s, i)

	case "lfg_alternative":
		if _, err := b.Service.Join(ctx, i.ChannelID, user.ID, true); err != nil {
			respondError(s, i, "join", err)
			return
		}
		acknowledge(s, i)

	case "lfg_leave":
		if _, err := b.Service.Leave(ctx, i.ChannelID, user.ID, user.ID); err != nil {
			respondError(s, i, "leave", err)
			return
		}
		acknowledge(s, i)

	case "lfg_settings":
		handleSettings(b, s, i)

	case "lfg_edit":
		handleEditButton(b, s, i)

	case "lfg_copy":
		handleCopyButton(b, s, i)

	case "lfg_kick":
		handleKickButton(b, s, i)

	case "lfg_kick_menu":
		handleKickMenu(b, s, i)

	case "lfg_delete":
		if err := b.Service.DeleteAsUser(ctx, i.ChannelID, user.ID); err != nil {
			respondError(s, i, "delete", err)
			return
		}
		acknowledge(s, i)
	}
}

// handleSettings reveals the owner-only settings row under the main
// buttons.
func handleSettings(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.Service.Settings(context.Background(), i.ChannelID, interactionUser(i).ID); err != nil {
		respondError(s, i, "settings", err)
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Components: []discordgo.MessageComponent{lfg.MainButtons(), lfg.SettingsButtons()},
		},
	})
	if err != nil {
		log.Printf("Error updating settings components: %v", err)
	}
}

func handleEditButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	form, err := b.Service.EditForm(context.Background(), i.ChannelID, interactionUser(i).ID)
	if err != nil {
		respondError(s, i, "edit", err)
		return
	}
	openModal(s, i, "lfg_edit", "Edit Event", form)
}

// handleCopyButton duplicates the post's fields into a fresh creation
// modal.
func handleCopyButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	form, err := b.Service.CopyForm(context.Background(), i.ChannelID, interactionUser(i).ID)
	if err != nil {
		respondError(s, i, "copy", err)
		return
	}
	openModal(s, i, "lfg_create", "Copy Event", form)
}

func handleKickButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.Service.RequireOwner(context.Background(), i.ChannelID, interactionUser(i).ID); err != nil {
		respondError(s, i, "kick", err)
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Select the user you want to kick",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType: discordgo.UserSelectMenu,
						CustomID: "lfg_kick_menu",
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("Error showing kick menu: %v", err)
	}
}

func handleKickMenu(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		acknowledge(s, i)
		return
	}

	if _, err := b.Service.Kick(context.Background(), i.ChannelID, interactionUser(i).ID, values[0]); err != nil {
		respondError(s, i, "kick", err)
		return
	}
	acknowledge(s, i)
}

func openModal(s *discordgo.Session, i *discordgo.InteractionCreate, customID, title string, form lfg.Form) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: lfg.FormComponents(form),
		},
	})
	if err != nil {
		log.Printf("Error opening %s modal: %v", customID, err)
	}
}

// ModalDispatcher routes create/edit form submissions.
func ModalDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	inputs := modalValues(data)
	user := interactionUser(i)

	size, err := strconv.Atoi(strings.TrimSpace(inputs["fireteam_size"]))
	if err != nil {
		respondError(s, i, data.CustomID, &lfg.InvalidInputError{
			Field: "fireteam size", Value: inputs["fireteam_size"], Hint: "must be a positive number",
		})
		return
	}

	switch data.CustomID {
	case "lfg_create":
		post, err := b.Service.Create(context.Background(), lfg.CreateInput{
			GuildID:      i.GuildID,
			UserID:       user.ID,
			Activity:     inputs["activity"],
			Description:  inputs["description"],
			StartTime:    inputs["start_time"],
			FireteamSize: size,
		})
		if err != nil {
			respondError(s, i, "create", err)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("Event created: <#%s>", post.ID))

	case "lfg_edit":
		if _, err := b.Service.Edit(context.Background(), lfg.EditInput{
			ThreadID:     i.ChannelID,
			UserID:       user.ID,
			Activity:     inputs["activity"],
			Description:  inputs["description"],
			StartTime:    inputs["start_time"],
			FireteamSize: size,
		}); err != nil {
			respondError(s, i, "edit", err)
			return
		}
		acknowledge(s, i)
	}
}

func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
