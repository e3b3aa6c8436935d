package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

// buildQuestionKeyboard builds the answer and navigation keyboard of the current question.
func buildQuestionKeyboard(v entities.SessionView) tgbotapi.InlineKeyboardMarkup {
	tag := v.ShortID()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range v.Question.Options {
		label := formatOption(option, option.Key == v.Selected)
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildSelectCallback(tag, v.Index, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if !v.IsFirst() {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(btnPrevious, buildPreviousCallback(tag)))
	}

	next := btnNext
	if v.IsLast() {
		next = btnFinish
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(next, buildNextCallback(tag)))

	rows = append(rows, nav)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard(v entities.SessionView) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 "+btnRetake, buildResetCallback(v.ShortID())),
		),
	)
}
