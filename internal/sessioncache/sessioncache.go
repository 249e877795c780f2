// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sessioncache holds the per-connection view state the reducer saves
on switch-away and restores on switch-back (spec.md §3 "Connection cache",
§4.8 "Connection state & switching"). It is a plain in-memory map guarded
by a mutex rather than one of the bounded cache types in internal/cache,
since the store itself has no eviction policy — a connection's saved
state is kept until Forget is called for it.
*/
package sessioncache

import (
	"sync"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/state"
)

// Store maps a [domain.ConnectionId] to its saved [state.ViewState].
type Store struct {
	mu    sync.RWMutex
	views map[domain.ConnectionId]state.ViewState
}

// NewStore constructs an empty connection cache store.
func NewStore() *Store {
	return &Store{views: make(map[domain.ConnectionId]state.ViewState)}
}

// Save records view as the saved state for id, called when the reducer
// switches away from id (spec.md §4.8 step 1).
func (s *Store) Save(id domain.ConnectionId, view state.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[id] = view
}

// Load returns the saved view for id, or a fresh [state.ViewState] if none
// was saved (spec.md §4.8 step 2: "if absent, uses defaults").
func (s *Store) Load(id domain.ConnectionId) state.ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.views[id]; ok {
		return v
	}
	return state.NewViewState()
}

// Forget removes id's saved view entirely.
func (s *Store) Forget(id domain.ConnectionId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, id)
}

// Len reports how many connections currently have saved view state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}
