package memory

import (
	"sync"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
)

// SessionStore holds at most one active session. Starting a new session or
// resetting bumps a generation counter so that late gateway responses tied
// to a discarded session can be detected and dropped.
type SessionStore struct {
	mu         sync.RWMutex
	session    *app.Session
	generation uint64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Start replaces any prior session with a fresh one for the given subject.
func (s *SessionStore) Start(subjectID string, questions []domain.Question, info domain.SubjectInfo) (*app.Session, uint64, error) {
	session, err := app.NewSession(subjectID, questions, info)
	if err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.generation++
	return session, s.generation, nil
}

// Current returns the active session and its generation, if any.
func (s *SessionStore) Current() (*app.Session, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, s.generation, false
	}
	return s.session, s.generation, true
}

// Reset discards the active session. Callable from any state.
func (s *SessionStore) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.generation++
	return s.generation
}

// Generation reports the current generation without touching the session.
func (s *SessionStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
