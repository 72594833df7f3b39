package navigation

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionManager keeps one Controller per client session and drops sessions
// that have been idle for too long.
type SessionManager struct {
	mu        sync.RWMutex
	sessions  map[string]*Controller
	factory   func() *Controller
	idle      time.Duration
	scheduler *gocron.Scheduler
	log       *zap.Logger
	now       func() time.Time
}

func NewSessionManager(factory func() *Controller, idle time.Duration, log *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Controller),
		factory:  factory,
		idle:     idle,
		log:      log,
		now:      time.Now,
	}
}

// Create starts a new session on the landing screen.
func (m *SessionManager) Create() (string, *Controller) {
	id := uuid.NewString()
	c := m.factory()

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	return id, c
}

func (m *SessionManager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	c, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every session idle for longer than the idle timeout and
// returns how many were removed.
func (m *SessionManager) Sweep() int {
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, c := range m.sessions {
		if c.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Info("idle sessions swept", zap.Int("removed", removed), zap.Int("remaining", len(m.sessions)))
	}
	return removed
}

// Start runs Sweep every interval in the background until Stop.
func (m *SessionManager) Start(interval time.Duration) error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(interval).Do(m.Sweep); err != nil {
		return err
	}
	s.StartAsync()
	m.scheduler = s
	return nil
}

func (m *SessionManager) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}
