// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

// User facing texts.
const (
	msgLoading         = "Loading quiz data..."
	msgNoQuestions     = "No questions available."
	msgSelectOption    = "Please select an option before proceeding."
	msgQuizUsage       = "Usage: /quiz <summary_id>"
	msgQuizReplaced    = "This quiz was replaced by a newer one."
	msgQuizInactive    = "This quiz is no longer active. Start a new one with /quiz <summary_id>."
	msgQuizClosed      = "Quiz closed."
	msgNoActiveQuiz    = "There is no quiz in progress."
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgQuizCompleted   = "🏁 Quiz completed!"
	btnPrevious        = "◀️ Previous"
	btnNext            = "Next ▶️"
	btnFinish          = "Finish"
	btnRetake          = "Retake Quiz"
	selectedOptionMark = "✅ "
	progressBarLength  = 10
	msgTrueOrFalse     = "True or false?"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMessage builds the /start message (MarkdownV2 safe).
func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("SummifyAI Quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Test yourself on your PDF summaries. Every quiz has multiple choice questions followed by true or false statements."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMessage())

	return sb.String()
}

// helpMessage lists the commands (MarkdownV2 safe).
func helpMessage() string {
	return md(strings.Join([]string{
		"/quiz <summary_id> - take the quiz of a summary",
		"/stop - close the current quiz",
		"/help - show this message",
	}, "\n"))
}

// formatError renders a load failure.
func formatError(reason string) string {
	return md("Error: " + reason)
}

// formatQuestion formats the current question (MarkdownV2 safe).
func formatQuestion(v entities.SessionView) string {
	q := v.Question

	header := fmt.Sprintf("Question %d of %d", v.Index+1, v.Total)
	if q.Kind == entities.KindTrueFalse {
		header += " · " + msgTrueOrFalse
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		md(header),
		bold(q.Prompt),
		md(fmt.Sprintf("Answered: %d/%d", v.AnsweredCount(), v.Total)),
	)
}

// formatResult formats quiz results (MarkdownV2 safe).
func formatResult(v entities.SessionView) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s %s",
		bold(msgQuizCompleted),
		md(fmt.Sprintf("You scored %d out of %d", v.Score, v.Total)),
		md(buildProgressBar(v.Score, v.Total, progressBarLength)),
		md(fmt.Sprintf("%.0f%%", v.Percentage())),
	)
}

// formatOption labels an answer button.
func formatOption(o entities.Option, selected bool) string {
	label := o.Key + ": " + o.Text
	if selected {
		return selectedOptionMark + label
	}
	return label
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
