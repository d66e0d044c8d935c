package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
)

// ============================================================================
// SESSION STORE — Independent per-user view states
// ============================================================================
// Each session owns a copy of its ViewState; no state is shared between
// sessions. Idle sessions expire after ttl, and the store never holds more
// than max entries (the least recently used one is evicted on create).
// ============================================================================

type session struct {
	state    engine.ViewState
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, max int) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if max <= 0 {
		max = 1000
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Create registers a new session holding state and returns its id.
func (s *sessionStore) Create(state engine.ViewState) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}

	id := uuid.NewString()
	s.sessions[id] = &session{state: state, lastSeen: now}
	return id
}

// Get returns the session's state and refreshes its idle timer.
func (s *sessionStore) Get(id string) (engine.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return engine.ViewState{}, err
	}
	return sess.state, nil
}

// Update replaces the session's state with fn's result. The state is left
// unchanged when fn fails.
func (s *sessionStore) Update(id string, fn func(engine.ViewState) (engine.ViewState, error)) (engine.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return engine.ViewState{}, err
	}
	next, err := fn(sess.state)
	if err != nil {
		return sess.state, err
	}
	sess.state = next
	return next, nil
}

// Delete removes a session. Unknown ids report not found.
func (s *sessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return unknownSession(id)
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	return len(s.sessions)
}

func (s *sessionStore) lookupLocked(id string) (*session, error) {
	now := s.now()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, unknownSession(id)
	}
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, unknownSession(id)
	}
	sess.lastSeen = now
	return sess, nil
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

func unknownSession(id string) error {
	return errs.Wrap(fmt.Errorf("session %q not found", id), errs.CategoryNotFound, "unknown_session", "create a session with POST /api/sessions")
}
