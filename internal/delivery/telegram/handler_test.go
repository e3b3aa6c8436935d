package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/summify-quiz-bot/internal/service"
	"github.com/aliskhannn/summify-quiz-bot/internal/storage"
)

const testChatID int64 = 42

type fakeBot struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	answers []tgbotapi.CallbackConfig
	nextID  int
	updates chan tgbotapi.Update
	stopped bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		b.answers = append(b.answers, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()
}

func (b *fakeBot) lastEdit(t *testing.T) tgbotapi.EditMessageTextConfig {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.sent) - 1; i >= 0; i-- {
		if edit, ok := b.sent[i].(tgbotapi.EditMessageTextConfig); ok {
			return edit
		}
	}
	t.Fatal("no message edit sent")
	return tgbotapi.EditMessageTextConfig{}
}

func (b *fakeBot) lastAnswer(t *testing.T) tgbotapi.CallbackConfig {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.answers) == 0 {
		t.Fatal("no callback answered")
	}
	return b.answers[len(b.answers)-1]
}

type stubLoader struct {
	payload *entities.QuizPayload
	err     error
}

func (l stubLoader) Load(context.Context, string) (*entities.QuizPayload, error) {
	return l.payload, l.err
}

func twoQuestionPayload() *entities.QuizPayload {
	return &entities.QuizPayload{
		MultipleChoice: []entities.MultipleChoiceQuestion{{
			Question:      "Q1",
			Options:       entities.Options{{Key: "A", Text: "one"}, {Key: "B", Text: "two"}},
			CorrectOption: "A",
		}},
		TrueFalse: []entities.TrueFalseQuestion{{
			Statement:     "S1",
			Options:       entities.Options{{Key: "True", Text: "True"}, {Key: "False", Text: "False"}},
			CorrectOption: "True",
		}},
	}
}

func newTestHandler(loader service.QuizLoader) (*Handler, *fakeBot) {
	bot := newFakeBot()
	svc := service.NewQuizService(loader, storage.NewSessionStorage(), zap.NewNop())
	return NewHandler(bot, zap.NewNop(), svc), bot
}

func commandUpdate(text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: testChatID},
		From:      &tgbotapi.User{ID: 7},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}

func startQuiz(t *testing.T, h *Handler) string {
	t.Helper()

	h.handleUpdate(context.Background(), commandUpdate("/quiz 5"))
	h.loads.Wait()

	view, err := h.quizService.View(testChatID)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	return view.ShortID()
}

func TestQuizCommandEditsLoadingMessage(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})
	startQuiz(t, h)

	first, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok || first.Text != md(msgLoading) {
		t.Fatalf("first message = %+v, want loading text", bot.sent[0])
	}

	edit := bot.lastEdit(t)
	if edit.MessageID != 1 {
		t.Errorf("edited message = %d, want loading message 1", edit.MessageID)
	}
	if !strings.Contains(edit.Text, "Question 1 of 2") {
		t.Errorf("edit text = %q", edit.Text)
	}
	if edit.ReplyMarkup == nil {
		t.Error("edit has no keyboard")
	}
}

func TestQuizCommandShowsLoadError(t *testing.T) {
	h, bot := newTestHandler(stubLoader{err: errors.New("failed to fetch quiz data")})
	startQuiz(t, h)

	edit := bot.lastEdit(t)
	if !strings.Contains(edit.Text, "Error: failed to fetch quiz data") {
		t.Errorf("edit text = %q", edit.Text)
	}
	if edit.ReplyMarkup != nil {
		t.Error("error view has a keyboard")
	}
}

func TestQuizCommandWithoutSummary(t *testing.T) {
	h, bot := newTestHandler(stubLoader{})
	h.handleUpdate(context.Background(), commandUpdate("/quiz"))

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok || msg.Text != msgQuizUsage {
		t.Fatalf("sent = %+v, want usage", bot.sent[0])
	}
}

func TestNextWithoutAnswerShowsAlert(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})
	tag := startQuiz(t, h)
	sentBefore := len(bot.sent)

	h.handleUpdate(context.Background(), callbackUpdate(buildNextCallback(tag)))

	answer := bot.lastAnswer(t)
	if !answer.ShowAlert || answer.Text != msgSelectOption {
		t.Errorf("answer = %+v, want alert %q", answer, msgSelectOption)
	}
	if len(bot.sent) != sentBefore {
		t.Error("message edited after rejected next")
	}
}

func TestFullQuizThroughCallbacks(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})
	tag := startQuiz(t, h)
	ctx := context.Background()

	h.handleUpdate(ctx, callbackUpdate(buildSelectCallback(tag, 0, 0)))
	if edit := bot.lastEdit(t); !strings.Contains(edit.ReplyMarkup.InlineKeyboard[0][0].Text, selectedOptionMark) {
		t.Errorf("selected option not marked: %+v", edit.ReplyMarkup.InlineKeyboard[0])
	}

	h.handleUpdate(ctx, callbackUpdate(buildNextCallback(tag)))
	if edit := bot.lastEdit(t); !strings.Contains(edit.Text, "Question 2 of 2") {
		t.Errorf("edit text = %q, want second question", edit.Text)
	}

	h.handleUpdate(ctx, callbackUpdate(buildSelectCallback(tag, 1, 1)))
	h.handleUpdate(ctx, callbackUpdate(buildNextCallback(tag)))

	edit := bot.lastEdit(t)
	if !strings.Contains(edit.Text, "You scored 1 out of 2") {
		t.Fatalf("edit text = %q, want result", edit.Text)
	}

	h.handleUpdate(ctx, callbackUpdate(buildResetCallback(tag)))
	if edit := bot.lastEdit(t); !strings.Contains(edit.Text, "Question 1 of 2") {
		t.Errorf("edit text = %q, want first question after retake", edit.Text)
	}
}

func TestStaleKeyboardIsIgnored(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})
	oldTag := startQuiz(t, h)
	newTag := startQuiz(t, h)
	if oldTag == newTag {
		t.Fatal("sessions share a tag")
	}
	sentBefore := len(bot.sent)

	h.handleUpdate(context.Background(), callbackUpdate(buildSelectCallback(oldTag, 0, 0)))

	if answer := bot.lastAnswer(t); answer.Text != msgQuizInactive {
		t.Errorf("answer = %+v, want %q", answer, msgQuizInactive)
	}
	if len(bot.sent) != sentBefore {
		t.Error("stale keyboard changed a message")
	}

	view, _ := h.quizService.View(testChatID)
	if view.Selected != "" {
		t.Errorf("selected = %q, want none", view.Selected)
	}
}

func TestStopDiscardsSession(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})
	tag := startQuiz(t, h)

	h.handleUpdate(context.Background(), commandUpdate("/stop"))
	if _, err := h.quizService.View(testChatID); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Fatalf("View() error = %v, want ErrSessionNotFound", err)
	}

	h.handleUpdate(context.Background(), callbackUpdate(buildNextCallback(tag)))
	if answer := bot.lastAnswer(t); answer.Text != msgQuizInactive {
		t.Errorf("answer = %+v, want %q", answer, msgQuizInactive)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h, bot := newTestHandler(stubLoader{payload: twoQuestionPayload()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	bot.updates <- commandUpdate("/help")
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !bot.stopped {
		t.Error("updates were not stopped")
	}
}

func TestWithErrorHandlingReportsFailures(t *testing.T) {
	h, bot := newTestHandler(stubLoader{})

	failing := []HandlerFunc{
		func(context.Context, int64) error { return errors.New("boom") },
		func(context.Context, int64) error { panic("boom") },
	}

	for i, fn := range failing {
		if err := h.withErrorHandling("test", fn)(context.Background(), testChatID); err != nil {
			t.Fatalf("handler %d error = %v, want nil", i, err)
		}

		msg, ok := bot.sent[len(bot.sent)-1].(tgbotapi.MessageConfig)
		if !ok || msg.Text != msgInternalError {
			t.Errorf("handler %d sent %+v, want internal error message", i, bot.sent[len(bot.sent)-1])
		}
	}
}
