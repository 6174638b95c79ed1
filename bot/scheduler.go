package bot

import (
	"context"
	"log"
	"time"

	"lfg-bot/lfg"
	"lfg-bot/utils"

	"github.com/robfig/cron/v3"
)

var c *cron.Cron

// startScheduler starts the cron jobs: a minutely reminder sweep and
// an hourly expiry sweep over past posts.
func startScheduler(service *lfg.Service) {
	log.Println("Initializing scheduler...")
	c = cron.New()

	_, err := c.AddFunc("@every 1m", func() {
		if err := service.SendReminders(context.Background(), time.Now()); err != nil {
			utils.Error("lfg", "reminders", err.Error())
		}
	})
	if err != nil {
		log.Fatalf("Could not set up reminder job: %v", err)
	}

	_, err = c.AddFunc("@hourly", func() {
		if err := service.ExpireOld(context.Background(), time.Now()); err != nil {
			utils.Error("lfg", "expiry", err.Error())
		}
	})
	if err != nil {
		log.Fatalf("Could not set up expiry job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started: reminders every minute, expiry hourly.")
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
