package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

var (
	colorTitle    = lipgloss.Color("33")
	colorMuted    = lipgloss.Color("242")
	colorSelected = lipgloss.Color("42")
	colorError    = lipgloss.Color("196")
	colorNotice   = lipgloss.Color("214")
)

// renderSession renders a session snapshot with an optional notice line.
func renderSession(v entities.SessionView, notice string, noColor bool) string {
	var body string
	help := "q quit"

	switch v.Status {
	case entities.StatusLoading:
		body = stylize("Loading quiz data...", noColor, colorMuted)

	case entities.StatusError:
		body = stylize("Error: "+v.Error, noColor, colorError)
		help = "r retry · q quit"

	case entities.StatusFinished:
		body = renderResult(v, noColor)
		help = "r retake · q quit"

	default:
		if v.Question == nil {
			body = "No questions available."
			break
		}
		body = renderQuestion(v, noColor)
		help = "1-9 select · ←/h previous · enter/→/l " + nextLabel(v) + " · q quit"
	}

	lines := []string{
		stylize("SummifyAI quiz · summary "+v.SummaryID, noColor, colorTitle),
		"",
		body,
		"",
	}
	if notice != "" {
		lines = append(lines, stylize(notice, noColor, colorNotice))
	}
	lines = append(lines, stylize(help, noColor, colorMuted))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func renderQuestion(v entities.SessionView, noColor bool) string {
	q := v.Question

	header := fmt.Sprintf("Question %d of %d", v.Index+1, v.Total)
	if q.Kind == entities.KindTrueFalse {
		header += " · True or false?"
	}

	lines := []string{
		stylize(header, noColor, colorMuted),
		bold(q.Prompt, noColor),
		"",
	}
	for i, o := range q.Options {
		line := fmt.Sprintf("  %d) %s: %s", i+1, o.Key, o.Text)
		if o.Key == v.Selected {
			line = stylize(fmt.Sprintf("> %d) %s: %s", i+1, o.Key, o.Text), noColor, colorSelected)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", stylize(fmt.Sprintf("Answered: %d/%d", v.AnsweredCount(), v.Total), noColor, colorMuted))

	return strings.Join(lines, "\n")
}

func renderResult(v entities.SessionView, noColor bool) string {
	return strings.Join([]string{
		bold("Quiz completed!", noColor),
		fmt.Sprintf("You scored %d out of %d (%.0f%%)", v.Score, v.Total, v.Percentage()),
	}, "\n")
}

func nextLabel(v entities.SessionView) string {
	if v.IsLast() {
		return "finish"
	}
	return "next"
}

// RenderQuiz renders every question of a quiz with its correct answer.
func RenderQuiz(summaryID string, quiz entities.Quiz, noColor bool) string {
	if quiz.IsEmpty() {
		return "No questions available.\n"
	}

	var sb strings.Builder
	sb.WriteString(stylize(fmt.Sprintf("Summary %s · %d questions", summaryID, quiz.Len()), noColor, colorTitle))
	sb.WriteString("\n")

	for i, q := range quiz.Questions() {
		sb.WriteString("\n")
		sb.WriteString(bold(fmt.Sprintf("%d. %s", i+1, q.Prompt), noColor))
		sb.WriteString("\n")
		for _, o := range q.Options {
			mark := " "
			if o.Key == q.CorrectOptionKey {
				mark = "*"
			}
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n", mark, o.Key, o.Text))
		}
	}

	return sb.String()
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
