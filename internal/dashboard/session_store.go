package dashboard

import (
	"sync"
	"time"

	"github.com/2beens/familyfit/internal/telemetry/metrics"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// SessionStore keeps open dashboard sessions in memory. Derived dashboard data never
// outlives its session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	location       *time.Location
	metricsManager *metrics.Manager
	now            func() time.Time

	janitor *cron.Cron
}

// NewSessionStore creates the store; location is the time zone used for weight chart labels.
func NewSessionStore(location *time.Location, metricsManager *metrics.Manager) *SessionStore {
	if location == nil {
		location = time.UTC
	}
	return &SessionStore{
		sessions:       make(map[string]*Session),
		location:       location,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *SessionStore) Create(locale string) *Session {
	if locale == "" {
		locale = DefaultLocale
	}
	sess := NewSession(uuid.NewString(), locale, NewLocaleDateLabeler(locale, s.location), s.now())

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.metricsManager.GaugeActiveSessions.Set(float64(count))
	log.Debugf("dashboard session %s created, locale %s", sess.ID(), locale)

	return sess
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	s.metricsManager.GaugeActiveSessions.Set(float64(count))
	return ok
}

func (s *SessionStore) Touch(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	sess.touch(s.now())
	return nil
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions without activity for longer than maxIdle, and returns how
// many were removed.
func (s *SessionStore) EvictIdle(maxIdle time.Duration) int {
	deadline := s.now().Add(-maxIdle)

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastActive().Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	s.metricsManager.GaugeActiveSessions.Set(float64(count))
	if evicted > 0 {
		log.Debugf("dashboard sessions: evicted %d idle, %d left", evicted, count)
	}

	return evicted
}

// StartJanitor evicts idle sessions every minute, until StopJanitor is called.
func (s *SessionStore) StartJanitor(maxIdle time.Duration) error {
	c := cron.New()
	if err := c.AddFunc("@every 1m", func() {
		s.EvictIdle(maxIdle)
	}); err != nil {
		return err
	}
	c.Start()

	s.mu.Lock()
	s.janitor = c
	s.mu.Unlock()

	log.Printf("dashboard sessions janitor started, max idle: %s", maxIdle)
	return nil
}

func (s *SessionStore) StopJanitor() {
	s.mu.Lock()
	janitor := s.janitor
	s.janitor = nil
	s.mu.Unlock()

	if janitor != nil {
		janitor.Stop()
	}
}
