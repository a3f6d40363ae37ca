// Package memory is the in-memory implementation of the session store.
//
// WHY NOT A DATABASE?
// Form sessions are throwaway UI state: a row list and the latest
// submitted record, replaced on every submission. Nothing here is meant
// to survive a restart, so a database file would only add a dependency
// and a cleanup problem. A mutex-guarded map is the whole store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sakif/signup-form/internal/apperror"
	"github.com/sakif/signup-form/internal/form"
)

// Store holds form sessions keyed by session ID.
//
// CONCURRENCY:
// The HTTP server calls into the store from many goroutines, so every
// method takes the mutex. The store hands out clones (form.State.Clone)
// in both directions — callers can never alias the map's contents.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*form.State
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*form.State),
	}
}

// Get returns a copy of the session, or apperror.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*form.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NotFound("form session", id)
	}
	return state.Clone(), nil
}

// Save creates or replaces the session keyed by state.ID.
func (s *Store) Save(_ context.Context, state *form.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.ID] = state.Clone()
	return nil
}

// Delete removes a session; unknown IDs are silently ignored.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// PurgeIdle drops every session whose last activity is before the cutoff.
// The server runs this periodically so abandoned sessions cannot grow the
// map without bound.
func (s *Store) PurgeIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, state := range s.sessions {
		if state.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live sessions (used by tests and logging).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
