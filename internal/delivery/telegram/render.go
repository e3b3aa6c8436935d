package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

// renderView renders a session snapshot as message text and an optional keyboard.
func renderView(v entities.SessionView) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch v.Status {
	case entities.StatusLoading:
		return md(msgLoading), nil

	case entities.StatusError:
		return formatError(v.Error), nil

	case entities.StatusFinished:
		kb := buildResultKeyboard(v)
		return formatResult(v), &kb

	default:
		if v.Question == nil {
			return md(msgNoQuestions), nil
		}
		kb := buildQuestionKeyboard(v)
		return formatQuestion(v), &kb
	}
}

// editView replaces the text and keyboard of msgID with the rendered view.
func (h *Handler) editView(chatID int64, msgID int, v entities.SessionView) error {
	text, kb := renderView(v)

	edit := newEdit(chatID, msgID, text)
	if kb != nil {
		edit.ReplyMarkup = kb
	}

	return h.send(edit)
}
