// Package jobs holds the in-memory status map for longer-running operations
// such as month-end salary report generation. The store is process-local and
// lost on restart; jobs are not durable.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

type Status struct {
	ID          string      `json:"id"`
	State       State       `json:"state"`
	Progress    int         `json:"progress"`
	Reason      string      `json:"reason,omitempty"`
	ReturnValue interface{} `json:"return_value,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Store is an explicitly-owned job-status map. Construct one per process (or
// per test) and inject it; there is no package-level singleton.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]Status
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]Status)}
}

// Create registers a new pending job and returns its ID.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	now := time.Now()
	s.jobs[id] = Status{ID: id, State: StatePending, CreatedAt: now, UpdatedAt: now}
	return id
}

func (s *Store) SetRunning(id string, progress int) {
	s.update(id, func(st *Status) {
		st.State = StateRunning
		st.Progress = progress
	})
}

func (s *Store) Finish(id string, returnValue interface{}) {
	s.update(id, func(st *Status) {
		st.State = StateDone
		st.Progress = 100
		st.ReturnValue = returnValue
	})
}

func (s *Store) Fail(id string, reason string) {
	s.update(id, func(st *Status) {
		st.State = StateFailed
		st.Reason = reason
	})
}

func (s *Store) Get(id string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.jobs[id]
	return st, ok
}

func (s *Store) update(id string, fn func(*Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.jobs[id]
	if !ok {
		return
	}
	fn(&st)
	st.UpdatedAt = time.Now()
	s.jobs[id] = st
}
