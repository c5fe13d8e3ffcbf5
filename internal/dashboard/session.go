package dashboard

import (
	"sync"
	"sync/atomic"
	"time"
)

// Session holds the state of one open dashboard. All aggregator operations take the
// session explicitly; mu only guards bookkeeping and is never held across a gateway
// call. mutationMu is held for a whole mutate-and-refresh, so mutations of one session
// are applied one at a time.
type Session struct {
	id      string
	locale  string
	labeler DateLabeler

	mu         sync.Mutex
	generation uint64
	profileID  string

	mutationMu sync.Mutex

	snapshot   atomic.Pointer[Snapshot]
	lastActive atomic.Int64
}

// mutationRef pins the snapshot a mutation was validated against.
type mutationRef struct {
	generation uint64
	snapshot   *Snapshot
}

func NewSession(id, locale string, labeler DateLabeler, now time.Time) *Session {
	if labeler == nil {
		labeler = NewLocaleDateLabeler(locale, time.UTC)
	}
	s := &Session{
		id:      id,
		locale:  locale,
		labeler: labeler,
	}
	s.snapshot.Store(newEmptySnapshot(now))
	s.touch(now)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Locale() string {
	return s.locale
}

func (s *Session) ProfileID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileID
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) SelectedDay() int {
	return s.snapshot.Load().SelectedDay
}

// Snapshot is never nil.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// beginLoad starts a new generation and publishes the loading snapshot. Any result
// still in flight for an older generation will be discarded.
func (s *Session) beginLoad(profileID string, now time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectedDay := s.snapshot.Load().SelectedDay
	if profileID != s.profileID {
		selectedDay = 1
	}
	s.profileID = profileID
	s.generation++
	s.snapshot.Store(newLoadingSnapshot(s.generation, profileID, selectedDay, now))
	return s.generation
}

func (s *Session) isCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == generation
}

// publishIf swaps in the snapshot built from the current one, unless the session has
// moved on to another generation in the meantime.
func (s *Session) publishIf(generation uint64, build func(current *Snapshot) *Snapshot) (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return nil, false
	}
	next := build(s.snapshot.Load())
	s.snapshot.Store(next)
	return next, true
}

func (s *Session) mutationRef() mutationRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mutationRef{
		generation: s.generation,
		snapshot:   s.snapshot.Load(),
	}
}

func (s *Session) selectDay(day int, now time.Time) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Load().withSelectedDay(day, now)
	s.snapshot.Store(next)
	return next
}
