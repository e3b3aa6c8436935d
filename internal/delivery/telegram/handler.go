package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	quizService QuizService

	loads sync.WaitGroup // in-flight quiz loads
}

func NewHandler(bot BotAPI, logger *zap.Logger, quizService QuizService) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.loads.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.loads.Wait()
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling("unknown", h.handleUnknown())(ctx, chatID)
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling("start", h.handleStart())(ctx, chatID)
	case "help":
		_ = h.withErrorHandling("help", h.handleHelp())(ctx, chatID)
	case "quiz":
		_ = h.withErrorHandling("quiz", h.handleQuiz(update.Message.CommandArguments()))(ctx, chatID)
	case "stop":
		_ = h.withErrorHandling("stop", h.handleStop())(ctx, chatID)
	default:
		_ = h.withErrorHandling("unknown", h.handleUnknown())(ctx, chatID)
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock", optionally showing text as an alert.
func (h *Handler) answerCallback(id, text string, alert bool) {
	answer := tgbotapi.NewCallback(id, text)
	if alert {
		answer = tgbotapi.NewCallbackWithAlert(id, text)
	}

	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("failed to answer callback",
			zap.String("callback_id", id),
			zap.Error(err),
		)
	}
}
