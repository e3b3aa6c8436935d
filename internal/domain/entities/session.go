package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a quiz attempt.
type SessionStatus string

const (
	StatusLoading  SessionStatus = "loading"
	StatusError    SessionStatus = "error"
	StatusActive   SessionStatus = "active"
	StatusFinished SessionStatus = "finished"
)

var (
	ErrAnswerRequired     = errors.New("select an option before proceeding")
	ErrSessionNotActive   = errors.New("quiz session is not active")
	ErrSessionNotFinished = errors.New("quiz session is not finished")
	ErrSessionNotLoading  = errors.New("quiz session is not loading")
	ErrStaleLoad          = errors.New("quiz load result belongs to another load")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrUnknownOption      = errors.New("unknown option")
)

// QuizSession is one quiz-taking attempt.
//
// It moves loading -> active -> finished (or loading -> error) and back to
// active on reset. Only one goroutine may drive a session at a time.
type QuizSession struct {
	ID        string
	SummaryID string
	StartedAt time.Time

	status       SessionStatus
	loadToken    string
	errMessage   string
	quiz         Quiz
	currentIndex int
	answers      AnswerRecord
	completedAt  *time.Time
}

// NewQuizSession creates a session waiting for its quiz to load.
func NewQuizSession(summaryID string) *QuizSession {
	return &QuizSession{
		ID:        uuid.NewString(),
		SummaryID: summaryID,
		StartedAt: time.Now(),
		status:    StatusLoading,
		loadToken: uuid.NewString(),
		answers:   AnswerRecord{},
	}
}

// ShortID returns the first eight characters of the session ID.
// Front ends with tight payload limits use it to tag their controls.
func (s *QuizSession) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// Status returns the current lifecycle state.
func (s *QuizSession) Status() SessionStatus { return s.status }

// LoadToken identifies the load the session is currently waiting for.
func (s *QuizSession) LoadToken() string { return s.loadToken }

// ErrorMessage returns the load failure reason in the error state.
func (s *QuizSession) ErrorMessage() string { return s.errMessage }

// CurrentIndex returns the position of the current question.
func (s *QuizSession) CurrentIndex() int { return s.currentIndex }

// Quiz returns the loaded quiz.
func (s *QuizSession) Quiz() Quiz { return s.quiz }

// Answers returns a copy of the recorded answers.
func (s *QuizSession) Answers() AnswerRecord { return s.answers.Clone() }

// CompletedAt returns when the session was finished, if it was.
func (s *QuizSession) CompletedAt() *time.Time { return s.completedAt }

// Reload puts the session back into loading and returns the new load token.
// Results of earlier loads are rejected from then on.
func (s *QuizSession) Reload() string {
	s.status = StatusLoading
	s.loadToken = uuid.NewString()
	s.errMessage = ""
	s.quiz = Quiz{}
	s.currentIndex = 0
	s.answers = AnswerRecord{}
	s.completedAt = nil
	return s.loadToken
}

// Loaded activates the session with the loaded quiz.
// An empty quiz still activates the session.
func (s *QuizSession) Loaded(token string, quiz Quiz) error {
	if err := s.checkLoad(token); err != nil {
		return err
	}

	s.quiz = quiz
	s.status = StatusActive
	s.currentIndex = 0
	s.answers = AnswerRecord{}
	return nil
}

// Failed moves the session into the error state with the given reason.
func (s *QuizSession) Failed(token, reason string) error {
	if err := s.checkLoad(token); err != nil {
		return err
	}

	s.status = StatusError
	s.errMessage = reason
	return nil
}

func (s *QuizSession) checkLoad(token string) error {
	if token != s.loadToken {
		return ErrStaleLoad
	}
	if s.status != StatusLoading {
		return ErrSessionNotLoading
	}
	return nil
}

// Select records key as the answer for question index, replacing any earlier answer.
// The current position does not change.
func (s *QuizSession) Select(index int, key string) error {
	if s.status != StatusActive {
		return ErrSessionNotActive
	}

	q, ok := s.quiz.Question(index)
	if !ok {
		return ErrQuestionOutOfRange
	}
	if !q.Options.Has(key) {
		return ErrUnknownOption
	}

	s.answers[index] = key
	return nil
}

// Next advances to the following question, or finishes the session on the last one.
// It returns ErrAnswerRequired without changing anything when the current
// question has not been answered.
func (s *QuizSession) Next() error {
	if s.status != StatusActive {
		return ErrSessionNotActive
	}

	total := s.quiz.Len()
	if total == 0 {
		return nil
	}

	if !s.answers.Answered(s.currentIndex) {
		return ErrAnswerRequired
	}

	if s.currentIndex < total-1 {
		s.currentIndex++
		return nil
	}

	s.status = StatusFinished
	now := time.Now()
	s.completedAt = &now
	return nil
}

// Previous moves back one question. It does nothing on the first question.
func (s *QuizSession) Previous() error {
	if s.status != StatusActive {
		return ErrSessionNotActive
	}

	if s.currentIndex > 0 {
		s.currentIndex--
	}
	return nil
}

// Reset starts the finished quiz over with no answers.
func (s *QuizSession) Reset() error {
	if s.status != StatusFinished {
		return ErrSessionNotFinished
	}

	s.status = StatusActive
	s.currentIndex = 0
	s.answers = AnswerRecord{}
	s.completedAt = nil
	return nil
}

// Score returns the number of correct answers once the session is finished.
func (s *QuizSession) Score() (int, bool) {
	if s.status != StatusFinished {
		return 0, false
	}
	return Score(s.quiz, s.answers), true
}

// View returns what a front end needs to render the session.
func (s *QuizSession) View() SessionView {
	v := SessionView{
		SessionID: s.ID,
		SummaryID: s.SummaryID,
		Status:    s.status,
		Error:     s.errMessage,
		Index:     s.currentIndex,
		Total:     s.quiz.Len(),
	}

	v.Answered = make([]bool, v.Total)
	for i := range v.Answered {
		v.Answered[i] = s.answers.Answered(i)
	}

	switch s.status {
	case StatusActive:
		if q, ok := s.quiz.Question(s.currentIndex); ok {
			v.Question = &q
			v.Selected = s.answers[s.currentIndex]
		}
	case StatusFinished:
		v.Score, _ = s.Score()
	}

	return v
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	SessionID string
	SummaryID string
	Status    SessionStatus
	Error     string
	Index     int
	Total     int
	Question  *Question // nil unless active with at least one question
	Selected  string    // answer for the current question, "" if none
	Answered  []bool
	Score     int
}

// IsFirst reports whether the current question is the first one.
func (v SessionView) IsFirst() bool {
	return v.Index == 0
}

// IsLast reports whether the current question is the last one.
func (v SessionView) IsLast() bool {
	return v.Total > 0 && v.Index == v.Total-1
}

// AnsweredCount returns how many questions have an answer.
func (v SessionView) AnsweredCount() int {
	n := 0
	for _, ok := range v.Answered {
		if ok {
			n++
		}
	}
	return n
}

// Percentage returns the score as a percentage of the question count.
func (v SessionView) Percentage() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Score) * 100 / float64(v.Total)
}

// ShortID returns the short form of the session ID.
func (v SessionView) ShortID() string {
	if len(v.SessionID) < 8 {
		return v.SessionID
	}
	return v.SessionID[:8]
}
