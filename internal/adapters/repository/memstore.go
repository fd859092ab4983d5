package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/pkg/metrics"
)

// defaultInitialCapacity sizes the backing slice for a typical day of
// sessions.
const defaultInitialCapacity = 8

// MemoryStore implements Store with a start-time-ordered in-memory slice.
// The pipeline is batch-oriented and single-writer; the mutex guards the
// operational metrics listener reading counts concurrently.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []model.Session
	byID     map[string]int
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make([]model.Session, 0, defaultInitialCapacity),
		byID:     make(map[string]int, defaultInitialCapacity),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add records a session in start order, replacing any previous entry with
// the same workout ID.
func (s *MemoryStore) Add(_ context.Context, sess model.Session) error {
	if sess.Workout.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[sess.Workout.ID]; ok {
		s.sessions[i] = sess
		s.resort()
		metrics.UpdateSessionsStored(len(s.sessions))
		return nil
	}

	s.sessions = append(s.sessions, sess)
	s.byID[sess.Workout.ID] = len(s.sessions) - 1
	s.resort()
	metrics.UpdateSessionsStored(len(s.sessions))
	return nil
}

// List returns a copy of the stored sessions ordered by start ascending.
func (s *MemoryStore) List(_ context.Context) []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Count returns the number of stored sessions.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// resort restores start ordering and the ID index. Must be called with
// s.mu held for writing.
func (s *MemoryStore) resort() {
	sort.SliceStable(s.sessions, func(i, j int) bool {
		return s.sessions[i].Workout.Start.Before(s.sessions[j].Workout.Start)
	})
	for i, sess := range s.sessions {
		s.byID[sess.Workout.ID] = i
	}
}
