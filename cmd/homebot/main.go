package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"

	homebot "github.com/dbrandt/homebot/pkg/bot"
	"github.com/dbrandt/homebot/pkg/bot/handlers"
	"github.com/dbrandt/homebot/pkg/bot/reminders"
	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/logger"
	"github.com/dbrandt/homebot/pkg/timeparse"
	"github.com/dbrandt/homebot/pkg/ui"
	"github.com/dbrandt/homebot/pkg/wekan"
)

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store := db.NewReminderStore(db.DB)
	rh := reminders.NewHandler(
		config.AppConfig.Reminders,
		store,
		timeparse.New(),
		wekan.New(config.AppConfig.Wekan),
	)
	hs := handlers.New(rh, store)

	opts := []bot.Option{
		bot.WithDefaultHandler(hs.Default),
	}
	b, err := bot.New(config.AppConfig.Telegram.Token, opts...)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, hs.Start)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, hs.Help)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, hs.Export)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, ui.CallbackPrefix, bot.MatchTypePrefix, rh.HandleCallback)

	go homebot.RunPeriodicTasks(ctx, rh.PollInterval(), []homebot.PeriodicTask{
		{
			Key: "reminders",
			Run: func(ctx context.Context, now time.Time) {
				rh.RunPeriodic(ctx, b, now)
			},
		},
	})

	logger.Info("Starting bot...")
	b.Start(ctx)
}
