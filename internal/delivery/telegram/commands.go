package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, welcomeMessage()))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleQuiz posts the loading message and loads the quiz in the background.
// The loading message is edited in place once the load settles.
func (h *Handler) handleQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summaryID := strings.TrimSpace(args)
		if summaryID == "" {
			return h.send(newPlainMessage(chatID, msgQuizUsage))
		}

		msg, err := h.bot.Send(newMessage(chatID, md(msgLoading)))
		if err != nil {
			return err
		}

		h.loads.Add(1)
		go func() {
			defer h.loads.Done()
			h.loadQuiz(ctx, chatID, msg.MessageID, summaryID)
		}()

		return nil
	}
}

func (h *Handler) loadQuiz(ctx context.Context, chatID int64, msgID int, summaryID string) {
	view, err := h.quizService.Start(ctx, chatID, summaryID)
	if err != nil {
		if errors.Is(err, service.ErrStaleSession) {
			h.logger.Debug("quiz load superseded",
				zap.Int64("chat_id", chatID),
				zap.String("summary_id", summaryID),
			)
			_ = h.send(newEdit(chatID, msgID, md(msgQuizReplaced)))
			return
		}
		if ctx.Err() != nil {
			return
		}

		h.logger.Error("failed to start quiz",
			zap.Int64("chat_id", chatID),
			zap.String("summary_id", summaryID),
			zap.Error(err),
		)
		_ = h.send(newEdit(chatID, msgID, md(msgInternalError)))
		return
	}

	h.logger.Info("quiz ready",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", view.SessionID),
		zap.String("status", string(view.Status)),
		zap.Int("questions", view.Total),
	)

	_ = h.editView(chatID, msgID, view)
}

func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.quizService.View(chatID); err != nil {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		h.quizService.Discard(chatID)
		return h.send(newPlainMessage(chatID, msgQuizClosed))
	}
}
