package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

var (
	ErrEmptySummaryID = errors.New("summary id is required")
	ErrStaleSession   = errors.New("quiz session has been replaced")
)

// QuizService runs quiz sessions addressed by a key, one session per key.
type QuizService struct {
	loader QuizLoader
	store  SessionStore
	logger *zap.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(loader QuizLoader, store SessionStore, logger *zap.Logger) *QuizService {
	return &QuizService{
		loader: loader,
		store:  store,
		logger: logger,
	}
}

// Start replaces the session for key with a new one and loads its quiz.
//
// The load result is applied only if the new session is still the one stored
// for key when the load returns; otherwise it is dropped and ErrStaleSession
// is returned. A cancelled ctx drops the result as well.
func (s *QuizService) Start(ctx context.Context, key int64, summaryID string) (entities.SessionView, error) {
	summaryID = strings.TrimSpace(summaryID)
	if summaryID == "" {
		return entities.SessionView{}, ErrEmptySummaryID
	}

	session := entities.NewQuizSession(summaryID)
	token := session.LoadToken()
	s.store.Put(key, session)

	s.logger.Debug("loading quiz",
		zap.Int64("key", key),
		zap.String("session_id", session.ID),
		zap.String("summary_id", summaryID),
	)

	payload, loadErr := s.loader.Load(ctx, summaryID)
	if ctx.Err() != nil {
		s.logger.Debug("quiz load cancelled, result dropped",
			zap.String("session_id", session.ID),
		)
		return entities.SessionView{}, ctx.Err()
	}

	err := s.store.Update(key, func(cur *entities.QuizSession) error {
		if cur.ID != session.ID {
			return ErrStaleSession
		}
		if loadErr != nil {
			return cur.Failed(token, loadErr.Error())
		}
		return cur.Loaded(token, entities.NormalizePayload(payload))
	})
	if err != nil {
		s.logger.Debug("quiz load result dropped",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return entities.SessionView{}, ErrStaleSession
	}

	if loadErr != nil {
		s.logger.Warn("failed to load quiz",
			zap.String("summary_id", summaryID),
			zap.Error(loadErr),
		)
	}

	return s.store.View(key)
}

// View returns the current state of the session for key.
func (s *QuizService) View(key int64) (entities.SessionView, error) {
	return s.store.View(key)
}

// Select records an answer for question index of the session for key.
func (s *QuizService) Select(key int64, sessionID string, index int, optionKey string) (entities.SessionView, error) {
	return s.apply(key, sessionID, func(qs *entities.QuizSession) error {
		return qs.Select(index, optionKey)
	})
}

// Next advances the session for key. It returns ErrAnswerRequired together
// with the unchanged view when the current question is unanswered.
func (s *QuizService) Next(key int64, sessionID string) (entities.SessionView, error) {
	return s.apply(key, sessionID, (*entities.QuizSession).Next)
}

// Previous moves the session for key one question back.
func (s *QuizService) Previous(key int64, sessionID string) (entities.SessionView, error) {
	return s.apply(key, sessionID, (*entities.QuizSession).Previous)
}

// Reset restarts the finished session for key.
func (s *QuizService) Reset(key int64, sessionID string) (entities.SessionView, error) {
	return s.apply(key, sessionID, (*entities.QuizSession).Reset)
}

// Discard drops the session for key.
func (s *QuizService) Discard(key int64) {
	s.store.Delete(key)
}

// apply runs fn against the session for key if sessionID still identifies it.
// sessionID may be the full ID or its short form.
func (s *QuizService) apply(key int64, sessionID string, fn func(*entities.QuizSession) error) (entities.SessionView, error) {
	var (
		view  entities.SessionView
		fnErr error
	)

	err := s.store.Update(key, func(cur *entities.QuizSession) error {
		if sessionID != "" && sessionID != cur.ID && sessionID != cur.ShortID() {
			return ErrStaleSession
		}
		fnErr = fn(cur)
		view = cur.View()
		return nil
	})
	if err != nil {
		return entities.SessionView{}, err
	}
	if fnErr != nil {
		return view, fmt.Errorf("session %s: %w", view.SessionID, fnErr)
	}

	return view, nil
}
