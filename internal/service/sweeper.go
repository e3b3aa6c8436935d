package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically drops quiz sessions that have been idle too long.
type SessionSweeper struct {
	store    IdleSessionStore
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(store IdleSessionStore, ttl time.Duration, schedule string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep removes idle sessions once and returns how many were removed.
func (s *SessionSweeper) Sweep() int {
	removed := s.store.DeleteIdle(s.now().Add(-s.ttl))
	if removed > 0 {
		s.logger.Info("idle quiz sessions removed", zap.Int("count", removed))
	}
	return removed
}

// Start runs the sweep on schedule until ctx is done.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_ttl", s.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}
