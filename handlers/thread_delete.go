package handlers

import (
	"context"
	"log"

	"lfg-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// ThreadDeleteHandler handles the THREAD_DELETE event. When someone
// removes an LFG thread out-of-band, the reconciliation protocol tears
// down the schedule mirror and the storage row; the thread-delete leg
// is already gone and gets absorbed.
func ThreadDeleteHandler(b *bot.Bot) func(s *discordgo.Session, t *discordgo.ThreadDelete) {
	return func(s *discordgo.Session, t *discordgo.ThreadDelete) {
		if err := b.Service.Delete(context.Background(), t.ID); err != nil {
			log.Printf("Error reconciling deleted thread %s: %v", t.ID, err)
			return
		}
		log.Printf("Reconciled externally deleted thread %s", t.ID)
	}
}
