package telegram

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/summify-quiz-bot/internal/service"
	"github.com/aliskhannn/summify-quiz-bot/internal/storage"
)

func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "", false)
		return
	}

	qc, err := parseQuizCallback(decodeCallback(cb.Data))
	if err != nil {
		h.logger.Warn("invalid callback data",
			zap.String("data", cb.Data),
		)
		h.answerCallback(cb.ID, "", false)
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	var view entities.SessionView
	switch qc.Op {
	case quizSelect:
		var changed bool
		view, changed, err = h.selectOption(chatID, qc)
		if err == nil && !changed {
			h.answerCallback(cb.ID, "", false)
			return
		}
	case quizNext:
		view, err = h.quizService.Next(chatID, qc.Tag)
	case quizPrevious:
		view, err = h.quizService.Previous(chatID, qc.Tag)
	case quizReset:
		view, err = h.quizService.Reset(chatID, qc.Tag)
	}

	if err != nil {
		h.handleCallbackError(cb, err)
		return
	}

	_ = h.editView(chatID, msgID, view)
	h.answerCallback(cb.ID, "", false)
}

// selectOption resolves the pressed button to an option key and records it.
// It reports changed=false when the button is stale or already selected.
func (h *Handler) selectOption(chatID int64, qc quizCallback) (entities.SessionView, bool, error) {
	view, err := h.quizService.View(chatID)
	if err != nil {
		return view, false, err
	}
	if view.ShortID() != qc.Tag {
		return view, false, service.ErrStaleSession
	}

	q := view.Question
	if q == nil || view.Index != qc.Index || qc.OptionPos >= len(q.Options) {
		return view, false, nil
	}

	key := q.Options[qc.OptionPos].Key
	if key == view.Selected {
		return view, false, nil
	}

	view, err = h.quizService.Select(chatID, qc.Tag, qc.Index, key)
	return view, err == nil, err
}

func (h *Handler) handleCallbackError(cb *tgbotapi.CallbackQuery, err error) {
	switch {
	case errors.Is(err, entities.ErrAnswerRequired):
		h.answerCallback(cb.ID, msgSelectOption, true)

	case errors.Is(err, service.ErrStaleSession), errors.Is(err, storage.ErrSessionNotFound):
		h.answerCallback(cb.ID, msgQuizInactive, false)

	default:
		h.logger.Debug("quiz event rejected",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, "", false)
	}
}
