package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Factory builds the controller for a new session.
type Factory func() *chat.Controller

// Session is one visitor's conversation.
type Session struct {
	ID         uuid.UUID
	Controller *chat.Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns when the session was last touched.
func (s *Session) LastSeen() (t time.Time) {
	s.mu.Lock()
	t = s.lastSeen
	s.mu.Unlock()
	return t
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Manager holds live sessions in memory. Nothing outlives the process.
type Manager struct {
	factory     Factory
	idleTimeout time.Duration
	clock       func() time.Time
	log         *logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a manager. A non-positive idleTimeout disables expiry.
func NewManager(factory Factory, idleTimeout time.Duration, log *logger.Logger) (manager *Manager) {
	manager = &Manager{
		factory:     factory,
		idleTimeout: idleTimeout,
		clock:       time.Now,
		log:         log.With("component", "session.Manager"),
		sessions:    make(map[uuid.UUID]*Session),
	}
	return manager
}

// Create starts a new session.
func (m *Manager) Create() (s *Session) {
	now := m.clock()
	s = &Session{
		ID:         uuid.New(),
		Controller: m.factory(),
		CreatedAt:  now,
		lastSeen:   now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Debug("session created", "session_id", s.ID)
	return s
}

// Get looks up a session by its string id and marks it as seen.
func (m *Manager) Get(id string) (s *Session, err error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		err = errors.Wrapf(ErrSessionNotFound, "invalid session id %q", id)
		return s, err
	}

	m.mu.RLock()
	s, ok := m.sessions[parsed]
	m.mu.RUnlock()

	if !ok {
		err = errors.Wrapf(ErrSessionNotFound, "session %s", parsed)
		return s, err
	}

	s.touch(m.clock())
	return s, err
}

// End removes a session.
func (m *Manager) End(id string) (err error) {
	var s *Session
	s, err = m.Get(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	m.log.Debug("session ended", "session_id", s.ID)
	return err
}

// Len returns the number of live sessions.
func (m *Manager) Len() (n int) {
	m.mu.RLock()
	n = len(m.sessions)
	m.mu.RUnlock()
	return n
}

// Sweep drops sessions idle longer than the timeout and returns how many went.
// Sessions with a pending response are kept.
func (m *Manager) Sweep() (removed int) {
	if m.idleTimeout <= 0 {
		return removed
	}

	cutoff := m.clock().Add(-m.idleTimeout)

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && s.Controller.State() == chat.StateIdle {
			delete(m.sessions, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.log.Info("expired idle sessions", "removed", removed, "remaining", m.Len())
	}

	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) (err error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return err
		case <-ticker.C:
			m.Sweep()
		}
	}
}
