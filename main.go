package main

import (
	"lfg-bot/bot"
	"lfg-bot/handlers"
)

func main() {
	bot.Run(handlers.Register)
}
