package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// QuizService runs one quiz session per chat.
type QuizService interface {
	Start(ctx context.Context, key int64, summaryID string) (entities.SessionView, error)
	View(key int64) (entities.SessionView, error)
	Select(key int64, sessionID string, index int, optionKey string) (entities.SessionView, error)
	Next(key int64, sessionID string) (entities.SessionView, error)
	Previous(key int64, sessionID string) (entities.SessionView, error)
	Reset(key int64, sessionID string) (entities.SessionView, error)
	Discard(key int64)
}
