package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"lfg-bot/bot"
	"lfg-bot/lfg"
	"lfg-bot/models"
	"lfg-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandDispatcher routes slash commands.
func CommandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "lfg" || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		optionMap[opt.Name] = opt
	}

	switch sub.Name {
	case "create":
		HandleCreate(b, s, i)
	case "join":
		HandleJoin(b, s, i, optionMap)
	case "leave":
		HandleLeave(b, s, i, optionMap)
	case "delete":
		HandleDelete(b, s, i, optionMap)
	case "timezone":
		HandleTimezone(b, s, i, optionMap)
	case "setup":
		HandleSetup(b, s, i, optionMap)
	}
}

// threadOption resolves the target thread: the explicit option when
// given, otherwise the channel the command ran in.
func threadOption(s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) string {
	if opt, ok := optionMap["thread"]; ok {
		return opt.ChannelValue(s).ID
	}
	return i.ChannelID
}

// HandleCreate opens the creation modal, pre-filled with a start time
// one hour ahead in the user's timezone.
func HandleCreate(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	loc := b.Service.UserLocation(context.Background(), user.ID)
	form := lfg.BuildForm("", time.Now().Add(time.Hour).Truncate(time.Minute), 6, "", loc)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   "lfg_create",
			Title:      "Create Event",
			Components: lfg.FormComponents(form),
		},
	})
	if err != nil {
		log.Printf("Error opening create modal: %v", err)
	}
}

// HandleJoin handles /lfg join.
func HandleJoin(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	thread := threadOption(s, i, optionMap)
	alternative := false
	if opt, ok := optionMap["alternative"]; ok {
		alternative = opt.BoolValue()
	}

	content, err := b.Service.Join(context.Background(), thread, interactionUser(i).ID, alternative)
	if err != nil {
		respondError(s, i, "join", err)
		return
	}
	respondEphemeral(s, i, content)
}

// HandleLeave handles /lfg leave.
func HandleLeave(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	thread := threadOption(s, i, optionMap)
	user := interactionUser(i)

	content, err := b.Service.Leave(context.Background(), thread, user.ID, user.ID)
	if err != nil {
		respondError(s, i, "leave", err)
		return
	}
	respondEphemeral(s, i, content)
}

// HandleDelete handles /lfg delete.
func HandleDelete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	thread := threadOption(s, i, optionMap)

	if err := b.Service.DeleteAsUser(context.Background(), thread, interactionUser(i).ID); err != nil {
		respondError(s, i, "delete", err)
		return
	}
	respondEphemeral(s, i, "Post deleted.")
}

// HandleTimezone handles /lfg timezone.
func HandleTimezone(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	var region string
	if opt, ok := optionMap["region"]; ok {
		region = opt.StringValue()
	}

	saved, err := b.Service.SaveTimezone(context.Background(), interactionUser(i).ID, region)
	if err != nil {
		respondError(s, i, "timezone", err)
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Your timezone has been set to %s", saved))
}

// HandleSetup handles /lfg setup, restricted to server admins.
func HandleSetup(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "This command can only be used within a server.")
		return
	}

	auth, err := utils.NewAuth()
	if err != nil {
		respondError(s, i, "setup", err)
		return
	}
	if !auth.CanSetup(i) {
		respondEphemeral(s, i, "Only server admins can set up the LFG plugin.")
		return
	}

	guild := &models.Guild{GuildID: i.GuildID}
	if opt, ok := optionMap["channel"]; ok {
		guild.ChannelID = opt.ChannelValue(s).ID
	}
	if opt, ok := optionMap["role"]; ok {
		guild.RoleID = opt.RoleValue(s, i.GuildID).ID
	}
	if opt, ok := optionMap["schedule_channel"]; ok {
		guild.ScheduleChannel = opt.ChannelValue(s).ID
	}

	if err := b.Service.Setup(context.Background(), guild); err != nil {
		respondError(s, i, "setup", err)
		return
	}
	utils.Info("lfg", "setup", fmt.Sprintf("Guild %s configured: channel <#%s>", guild.GuildID, guild.ChannelID))
	respondEphemeral(s, i, "LFG plugin has been setup")
}
