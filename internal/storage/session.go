package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("quiz session not found")

type sessionEntry struct {
	session   *entities.QuizSession
	touchedAt time.Time
}

// SessionStorage keeps quiz sessions in memory, one per key (a chat ID).
// All access to a stored session goes through the storage lock.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*sessionEntry
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*sessionEntry),
		now:      time.Now,
	}
}

// Put stores s for key, replacing any previous session.
func (st *SessionStorage) Put(key int64, s *entities.QuizSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[key] = &sessionEntry{session: s, touchedAt: st.now()}
}

// Update runs fn on the session stored for key while holding the lock.
func (st *SessionStorage) Update(key int64, fn func(s *entities.QuizSession) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[key]
	if !ok {
		return ErrSessionNotFound
	}
	e.touchedAt = st.now()
	return fn(e.session)
}

// View returns a snapshot of the session stored for key.
func (st *SessionStorage) View(key int64) (entities.SessionView, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.sessions[key]
	if !ok {
		return entities.SessionView{}, ErrSessionNotFound
	}
	return e.session.View(), nil
}

// Delete removes the session stored for key.
func (st *SessionStorage) Delete(key int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, key)
}

// DeleteIdle removes sessions not touched since before cutoff and returns how many were removed.
func (st *SessionStorage) DeleteIdle(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for key, e := range st.sessions {
		if e.touchedAt.Before(cutoff) {
			delete(st.sessions, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (st *SessionStorage) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
