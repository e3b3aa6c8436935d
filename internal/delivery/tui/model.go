// Package tui is a terminal front end for taking a quiz.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/summify-quiz-bot/internal/service"
)

const noticeSelectOption = "Please select an option before proceeding."

// Options configures the quiz model.
type Options struct {
	NoColor bool
	Logger  *zap.Logger
}

// Model renders one quiz session using Bubble Tea.
//
// The session is owned by the model and only touched from Update, so it
// needs no locking.
type Model struct {
	ctx     context.Context
	loader  service.QuizLoader
	session *entities.QuizSession
	notice  string
	noColor bool
	logger  *zap.Logger
}

// NewModel constructs a model that loads the quiz of summaryID on start.
func NewModel(ctx context.Context, loader service.QuizLoader, summaryID string, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		ctx:     ctx,
		loader:  loader,
		session: entities.NewQuizSession(summaryID),
		noColor: opts.NoColor,
		logger:  logger,
	}
}

// loadedMsg carries a loader result tagged with the load it belongs to.
type loadedMsg struct {
	token   string
	payload *entities.QuizPayload
	err     error
}

// Init starts loading the quiz.
func (m Model) Init() tea.Cmd {
	return m.load(m.session.LoadToken())
}

func (m Model) load(token string) tea.Cmd {
	ctx, loader, summaryID := m.ctx, m.loader, m.session.SummaryID
	return func() tea.Msg {
		payload, err := loader.Load(ctx, summaryID)
		return loadedMsg{token: token, payload: payload, err: err}
	}
}

// Update applies load results and key presses to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case loadedMsg:
		m.applyLoad(typed)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m *Model) applyLoad(msg loadedMsg) {
	var err error
	if msg.err != nil {
		m.logger.Warn("failed to load quiz",
			zap.String("summary_id", m.session.SummaryID),
			zap.Error(msg.err),
		)
		err = m.session.Failed(msg.token, msg.err.Error())
	} else {
		err = m.session.Loaded(msg.token, entities.NormalizePayload(msg.payload))
	}

	if err != nil {
		m.logger.Debug("quiz load result dropped", zap.Error(err))
	}
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	var err error
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "right", "l":
		err = m.session.Next()
	case "left", "h":
		err = m.session.Previous()
	case "r":
		switch m.session.Status() {
		case entities.StatusFinished:
			err = m.session.Reset()
		case entities.StatusError:
			return m, m.load(m.session.Reload())
		}
	default:
		if pos, ok := optionPosition(key); ok {
			err = m.selectOption(pos)
		}
	}

	if errors.Is(err, entities.ErrAnswerRequired) {
		m.notice = noticeSelectOption
	} else if err != nil {
		m.logger.Debug("quiz event rejected",
			zap.String("key", key.String()),
			zap.Error(err),
		)
	}

	return m, nil
}

// selectOption answers the current question with the option at pos.
func (m Model) selectOption(pos int) error {
	v := m.session.View()
	if v.Question == nil || pos >= len(v.Question.Options) {
		return nil
	}
	return m.session.Select(v.Index, v.Question.Options[pos].Key)
}

// optionPosition maps the keys 1-9 to option positions.
func optionPosition(key tea.KeyMsg) (int, bool) {
	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return 0, false
	}

	r := key.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// View renders the session.
func (m Model) View() string {
	return renderSession(m.session.View(), m.notice, m.noColor)
}

// Session returns a snapshot of the session.
func (m Model) Session() entities.SessionView {
	return m.session.View()
}
