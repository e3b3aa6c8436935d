package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/config"
	"github.com/aliskhannn/summify-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/summify-quiz-bot/internal/infra/loader"
	"github.com/aliskhannn/summify-quiz-bot/internal/logger"
	"github.com/aliskhannn/summify-quiz-bot/internal/service"
	"github.com/aliskhannn/summify-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegramToken(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "quiz",
			Description: "Take the quiz of a summary (usage: /quiz 12)",
		},
		{
			Command:     "stop",
			Description: "Close the current quiz",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quizLoader, release, err := loader.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init quiz source", zap.Error(err))
	}
	defer release()

	sessions := storage.NewSessionStorage()
	quizService := service.NewQuizService(quizLoader, sessions, lg)

	sweeper := service.NewSessionSweeper(sessions, cfg.Sessions.IdleTTL, cfg.Sessions.SweepSchedule, lg)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper stopped", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(bot, lg, quizService)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
