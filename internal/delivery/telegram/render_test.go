package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

func questionView(index, total int, selected string) entities.SessionView {
	q := entities.Question{
		Kind:             entities.KindMultipleChoice,
		Prompt:           "Which layer routes packets?",
		Options:          entities.Options{{Key: "A", Text: "Network"}, {Key: "B", Text: "Transport"}},
		CorrectOptionKey: "A",
	}

	return entities.SessionView{
		SessionID: "0123456789abcdef",
		Status:    entities.StatusActive,
		Index:     index,
		Total:     total,
		Question:  &q,
		Selected:  selected,
		Answered:  make([]bool, total),
	}
}

func buttonTexts(kb *tgbotapi.InlineKeyboardMarkup) [][]string {
	var out [][]string
	for _, row := range kb.InlineKeyboard {
		var texts []string
		for _, b := range row {
			texts = append(texts, b.Text)
		}
		out = append(out, texts)
	}
	return out
}

func TestRenderFirstQuestion(t *testing.T) {
	text, kb := renderView(questionView(0, 3, ""))

	if !strings.Contains(text, "Question 1 of 3") {
		t.Errorf("text = %q, want question counter", text)
	}
	if kb == nil {
		t.Fatal("keyboard = nil")
	}

	rows := buttonTexts(kb)
	if len(rows) != 3 {
		t.Fatalf("rows = %v, want 2 options and navigation", rows)
	}
	if rows[0][0] != "A: Network" || rows[1][0] != "B: Transport" {
		t.Errorf("option buttons = %v", rows[:2])
	}
	if nav := rows[2]; len(nav) != 1 || nav[0] != btnNext {
		t.Errorf("navigation = %v, want only %q", nav, btnNext)
	}

	if data := *kb.InlineKeyboard[1][0].CallbackData; data != "quiz:sel:01234567:0:1" {
		t.Errorf("select callback = %q", data)
	}
}

func TestRenderLastQuestionWithSelection(t *testing.T) {
	_, kb := renderView(questionView(2, 3, "B"))

	rows := buttonTexts(kb)
	if rows[1][0] != selectedOptionMark+"B: Transport" {
		t.Errorf("selected button = %q", rows[1][0])
	}
	if rows[0][0] != "A: Network" {
		t.Errorf("unselected button = %q", rows[0][0])
	}
	if nav := rows[2]; len(nav) != 2 || nav[0] != btnPrevious || nav[1] != btnFinish {
		t.Errorf("navigation = %v, want [%s %s]", nav, btnPrevious, btnFinish)
	}
}

func TestRenderStates(t *testing.T) {
	tests := []struct {
		name     string
		view     entities.SessionView
		contains string
		keyboard bool
	}{
		{
			name:     "loading",
			view:     entities.SessionView{Status: entities.StatusLoading},
			contains: md(msgLoading),
		},
		{
			name:     "error",
			view:     entities.SessionView{Status: entities.StatusError, Error: "failed to fetch quiz data"},
			contains: "Error: failed to fetch quiz data",
		},
		{
			name:     "empty quiz",
			view:     entities.SessionView{Status: entities.StatusActive},
			contains: md(msgNoQuestions),
		},
		{
			name:     "finished",
			view:     entities.SessionView{SessionID: "0123456789abcdef", Status: entities.StatusFinished, Total: 2, Score: 1},
			contains: "You scored 1 out of 2",
			keyboard: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, kb := renderView(tt.view)
			if !strings.Contains(text, tt.contains) {
				t.Errorf("text = %q, want it to contain %q", text, tt.contains)
			}
			if (kb != nil) != tt.keyboard {
				t.Errorf("keyboard = %v, want present=%v", kb, tt.keyboard)
			}
		})
	}
}

func TestResultKeyboardOffersRetake(t *testing.T) {
	_, kb := renderView(entities.SessionView{SessionID: "0123456789abcdef", Status: entities.StatusFinished, Total: 1})

	b := kb.InlineKeyboard[0][0]
	if !strings.Contains(b.Text, btnRetake) {
		t.Errorf("button = %q, want %q", b.Text, btnRetake)
	}
	if *b.CallbackData != "quiz:reset:01234567" {
		t.Errorf("callback = %q", *b.CallbackData)
	}
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 0, "[░░░░]"},
		{1, 2, "[██░░]"},
		{2, 2, "[████]"},
		{5, 2, "[████]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, 4); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}
