package command

import "github.com/bwmarrin/discordgo"

// LFGCommand defines the structure for the /lfg command.
type LFGCommand struct{}

// Definition returns the application command definition.
func (c *LFGCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "lfg",
		Description: "Looking-for-group fireteam coordination",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "create",
				Description: "Create a new LFG post",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "join",
				Description: "Join an LFG post",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "thread",
						Description: "The post to join (defaults to the current thread)",
						Type:        discordgo.ApplicationCommandOptionChannel,
						Required:    false,
					},
					{
						Name:        "alternative",
						Description: "Join as an alternative instead of a fireteam member",
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Required:    false,
					},
				},
			},
			{
				Name:        "leave",
				Description: "Leave an LFG post",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "thread",
						Description: "The post to leave (defaults to the current thread)",
						Type:        discordgo.ApplicationCommandOptionChannel,
						Required:    false,
					},
				},
			},
			{
				Name:        "delete",
				Description: "Delete your LFG post",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "thread",
						Description: "The post to delete (defaults to the current thread)",
						Type:        discordgo.ApplicationCommandOptionChannel,
						Required:    false,
					},
				},
			},
			{
				Name:        "timezone",
				Description: "Save your scheduling timezone",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "region",
						Description: "IANA region, e.g. Australia/Sydney",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "setup",
				Description: "Configure the LFG plugin for this server",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "channel",
						Description: "Forum channel that hosts LFG posts",
						Type:        discordgo.ApplicationCommandOptionChannel,
						Required:    true,
					},
					{
						Name:        "role",
						Description: "Role to ping on new posts",
						Type:        discordgo.ApplicationCommandOptionRole,
						Required:    false,
					},
					{
						Name:        "schedule_channel",
						Description: "Channel that mirrors a summary of each post",
						Type:        discordgo.ApplicationCommandOptionChannel,
						Required:    false,
					},
				},
			},
		},
	}
}
