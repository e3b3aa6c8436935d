package service

import (
	"context"
	"time"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

// QuizLoader fetches the generated quiz of a summary.
type QuizLoader interface {
	Load(ctx context.Context, summaryID string) (*entities.QuizPayload, error)
}

// SessionStore keeps sessions by key and serializes access to each of them.
type SessionStore interface {
	Put(key int64, s *entities.QuizSession)
	Update(key int64, fn func(s *entities.QuizSession) error) error
	View(key int64) (entities.SessionView, error)
	Delete(key int64)
}

// IdleSessionStore can drop sessions nobody has touched for a while.
type IdleSessionStore interface {
	DeleteIdle(cutoff time.Time) int
}
