package spaced_repetition

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle session stays valid
const DefaultSessionTTL = 2 * time.Hour

// SessionStore holds active review sessions in memory, keyed by session id.
// Expired sessions are dropped lazily on lookup and in bulk by Sweep.
type SessionStore struct {
	// Clock is the time source; overridden in tests
	Clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]*ReviewSession
	ttl      time.Duration
}

// NewSessionStore creates a store with the given idle timeout.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		Clock:    time.Now,
		sessions: make(map[string]*ReviewSession),
		ttl:      ttl,
	}
}

// Get returns the session with the given id, or false if it is unknown or
// has expired. An expired session is removed on the spot.
func (s *SessionStore) Get(id string) (*ReviewSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.Clock().Sub(sess.lastActivity) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

// Put stores a session and stamps its activity time
func (s *SessionStore) Put(sess *ReviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.lastActivity = s.Clock()
	s.sessions[sess.ID] = sess
}

// Touch refreshes a session's activity time
func (s *SessionStore) Touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastActivity = s.Clock()
	}
}

// Delete removes a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions, including any not yet swept
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes all expired sessions and returns how many were dropped
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActivity) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
