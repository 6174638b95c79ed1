package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lfg-bot/command"
	"lfg-bot/config"
	"lfg-bot/database"
	"lfg-bot/discord"
	"lfg-bot/lfg"
	"lfg-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	Store   database.Store
	Service *lfg.Service
}

// NewBot creates and initializes a new Bot instance: configuration,
// storage adapter (sqlite or postgres, per database.driver) and the
// LFG service wired over both.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers

	service := lfg.NewService(store, store, store, store, discord.NewMessenger(dg))

	return &Bot{
		Session: dg,
		Store:   store,
		Service: service,
	}, nil
}

func openStore() (database.Store, error) {
	switch driver := viper.GetString("database.driver"); driver {
	case "sqlite":
		return database.InitSQLite(viper.GetString("database.path"))
	case "postgres":
		return database.InitPostgres(context.Background(), viper.GetString("database.url"))
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

// Start opens the bot's session, registers slash commands and starts
// the housekeeping scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			utils.Warn("bot", "commands", fmt.Sprintf("Cannot create '%v' command: %v", def.Name, err))
		}
	}

	startScheduler(b.Service)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session and storage.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	if b.Store != nil {
		b.Store.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
