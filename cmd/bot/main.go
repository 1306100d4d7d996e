package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fittrack/internal/config"
	"fittrack/internal/ledger"
	"fittrack/internal/scheduler"
	"fittrack/internal/session"
	"fittrack/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := ledger.NewDiskStore(cfg.DataDir, cfg.DefaultTargetCalories, cfg.DefaultTargetProtein)
	if err != nil {
		log.Fatalf("failed to init ledger store: %v", err)
	}

	sessions := session.NewManager()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		store,
		sessions,
		cfg.MessageParseMode,
		cfg.Location(),
		cfg.SessionIdleTimeout,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	sched.SetSweepFunction(bot.SweepIdleSessions)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}
