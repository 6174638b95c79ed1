package handlers

import (
	"log"

	"lfg-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(ThreadDeleteHandler(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}

// InteractionCreate routes interactions to the command, component and
// modal handlers.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			CommandDispatcher(b, s, i)
		case discordgo.InteractionMessageComponent:
			ComponentDispatcher(b, s, i)
		case discordgo.InteractionModalSubmit:
			ModalDispatcher(b, s, i)
		}
	}
}
