package services

import (
	"sync"
	"time"

	"github.com/anjiri1684/wiki_quiz/logger"
)

// StatePublisher receives session state after every change.
type StatePublisher interface {
	Publish(sessionID string, payload interface{})
}

type storedSession struct {
	ctrl     *SessionController
	lastSeen time.Time
}

// SessionStore keeps one SessionController per browser session. State lives
// only in memory; idle sessions are dropped by Sweep.
type SessionStore struct {
	backend   QuizBackend
	log       *logger.Logger
	publisher StatePublisher
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*storedSession
}

func NewSessionStore(backend QuizBackend, log *logger.Logger, publisher StatePublisher) *SessionStore {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionStore{
		backend:   backend,
		log:       log,
		publisher: publisher,
		now:       time.Now,
		sessions:  make(map[string]*storedSession),
	}
}

// Get returns the controller for sessionID, creating it on first use.
func (s *SessionStore) Get(sessionID string) *SessionController {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ss, ok := s.sessions[sessionID]; ok {
		ss.lastSeen = s.now()
		return ss.ctrl
	}

	ctrl := NewSessionController(s.backend, s.log.With("session_id", sessionID))
	if s.publisher != nil {
		pub := s.publisher
		ctrl.OnChange(func(st SessionState) {
			pub.Publish(sessionID, st)
		})
	}
	s.sessions[sessionID] = &storedSession{ctrl: ctrl, lastSeen: s.now()}
	return ctrl
}

func (s *SessionStore) Lookup(sessionID string) (*SessionController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return ss.ctrl, true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions not seen within ttl and returns how many were removed.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var evicted []*SessionController
	for id, ss := range s.sessions {
		if ss.lastSeen.Before(cutoff) {
			evicted = append(evicted, ss.ctrl)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, ctrl := range evicted {
		ctrl.Close()
	}
	return len(evicted)
}
