package lfg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lfg-bot/models"

	"github.com/bwmarrin/discordgo"
)

// StartTimeLayout is the wall-clock format organizers type into the
// create/edit form. It is interpreted in the organizer's saved
// timezone.
const StartTimeLayout = "2006-01-02 15:04"

const descriptionLimit = 1024

// truncateDescription caps the description at the embed field limit,
// counting characters rather than bytes so multi-byte input is never
// cut mid-rune. An empty description falls back to the activity name.
func truncateDescription(description, activity string) string {
	if description == "" {
		description = activity
	}
	if runes := []rune(description); len(runes) > descriptionLimit {
		description = string(runes[:descriptionLimit])
	}
	return description
}

// Form is the pre-filled creation/edit form. Values are the literal
// strings shown in the modal's text inputs.
type Form struct {
	Activity     string
	StartTime    string
	FireteamSize string
	Description  string
}

// BuildForm renders a post's fields into an editable form. Pure: no
// I/O, operates only on the values it is given. Used for first-time
// creation defaults and for copying an existing post.
func BuildForm(activity string, start time.Time, fireteamSize int, description string, loc *time.Location) Form {
	if loc == nil {
		loc = time.UTC
	}
	return Form{
		Activity:     activity,
		StartTime:    start.In(loc).Format(StartTimeLayout),
		FireteamSize: strconv.Itoa(fireteamSize),
		Description:  description,
	}
}

// ParseStartTime interprets an organizer's wall-clock input in their
// timezone and returns the absolute instant.
func ParseStartTime(loc *time.Location, value string) (time.Time, error) {
	start, err := time.ParseInLocation(StartTimeLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, &InvalidInputError{Field: "start time", Value: value, Hint: "expected format: " + StartTimeLayout}
	}
	return start, nil
}

// ThreadTitle is the name given to the post's thread.
func ThreadTitle(activity string, start time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s - %s", activity, start.In(loc).Format("02 Jan 15:04 MST"))
}

// ThreadEmbed renders the post inside its own thread.
func ThreadEmbed(post *models.Post, ownerName string) *discordgo.MessageEmbed {
	return postEmbed(post, ownerName, "")
}

// MirrorEmbed renders the schedule-channel summary, which adds a link
// back to the thread.
func MirrorEmbed(post *models.Post, ownerName string) *discordgo.MessageEmbed {
	return postEmbed(post, ownerName, post.ID)
}

func postEmbed(post *models.Post, ownerName, threadID string) *discordgo.MessageEmbed {
	timestamp := post.StartTime.Unix()

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s - <t:%d>", post.Activity, timestamp),
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Activity", Value: post.Activity, Inline: true},
			{Name: "Start Time", Value: fmt.Sprintf("<t:%d:R>", timestamp), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Created by %s", ownerName)},
	}

	if threadID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Thread", Value: fmt.Sprintf("<#%s>", threadID), Inline: true,
		})
	}

	if post.Description != "" && post.Description != post.Activity {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Description", Value: post.Description,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("Joined (%d/%d)", len(post.Fireteam), post.FireteamSize),
		Value:  mentionList(post.Fireteam),
		Inline: true,
	})

	if len(post.Alternates) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Alternatives",
			Value:  mentionList(post.Alternates),
			Inline: true,
		})
	}

	return embed
}

func mentionList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	return strings.Join(mentions, "\n")
}

// MainButtons is the action row attached to every post's thread
// message: join, leave, join-as-alternative, settings.
func MainButtons() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "lfg_join", Emoji: &discordgo.ComponentEmoji{Name: "➕"}, Style: discordgo.SuccessButton},
			discordgo.Button{CustomID: "lfg_leave", Emoji: &discordgo.ComponentEmoji{Name: "➖"}, Style: discordgo.DangerButton},
			discordgo.Button{CustomID: "lfg_alternative", Emoji: &discordgo.ComponentEmoji{Name: "❔"}, Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: "lfg_settings", Emoji: &discordgo.ComponentEmoji{Name: "⚙️"}, Style: discordgo.SecondaryButton},
		},
	}
}

// SettingsButtons is the owner-only row revealed by the settings
// button.
func SettingsButtons() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "lfg_edit", Label: "Edit", Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: "lfg_copy", Label: "Copy", Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: "lfg_kick", Label: "Kick", Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: "lfg_delete", Label: "Delete", Style: discordgo.DangerButton},
		},
	}
}

// FormComponents lays the form out as modal text inputs.
func FormComponents(form Form) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: "activity", Label: "Activity",
				Style: discordgo.TextInputShort, Required: true,
				Value: form.Activity, MaxLength: 100,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: "start_time", Label: "Start Time (" + StartTimeLayout + ")",
				Style: discordgo.TextInputShort, Required: true,
				Value: form.StartTime,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: "fireteam_size", Label: "Fireteam Size",
				Style: discordgo.TextInputShort, Required: true,
				Value: form.FireteamSize, MaxLength: 2,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: "description", Label: "Description",
				Style: discordgo.TextInputParagraph, Required: false,
				Value: form.Description, MaxLength: descriptionLimit,
			},
		}},
	}
}
