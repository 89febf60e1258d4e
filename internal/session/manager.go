package session

import (
	"context"
	"sync"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/form"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
)

// CookieName identifies the browser's form session.
const CookieName = "fqc_session"

// Manager keeps one form per browser session.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*state
	predictor form.Predictor
	logger    *utils.Logger
	now       func() time.Time
}

type state struct {
	form         *form.Form
	lastAccessed time.Time
}

func NewManager(predictor form.Predictor, logger *utils.Logger) *Manager {
	if logger == nil {
		logger = utils.NopLogger()
	}

	return &Manager{
		sessions:  make(map[string]*state),
		predictor: predictor,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the form for id, creating a new session when id is unknown.
// The returned id is the one the caller should store in the cookie.
func (m *Manager) Get(id string) (string, *form.Form) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok && id != "" {
		s.lastAccessed = now
		return id, s.form
	}

	id = utils.GenerateID()
	s := &state{
		form:         form.New(m.predictor, m.logger.With("session", id)),
		lastAccessed: now,
	}
	m.sessions[id] = s

	m.logger.Debug("Session created", "session", id)
	return id, s.form
}

// Lookup returns the form for id without creating one.
func (m *Manager) Lookup(id string) (*form.Form, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return s.form, true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Cleanup drops sessions idle for longer than maxAge. Sessions with a
// submission in flight are kept.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.lastAccessed.Before(cutoff) && !s.form.Loading() {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Info("Expired sessions removed", "count", removed, "remaining", len(m.sessions))
	}

	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup(maxAge)
		}
	}
}
