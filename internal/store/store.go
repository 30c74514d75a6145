// Package store keeps the latest machine snapshot for read-only queries.
package store

import (
	"sync"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

// Store holds the most recent snapshot. Snapshots are ordered by their
// message sequence; an older or equal sequence never replaces a newer one.
type Store struct {
	mu      sync.RWMutex
	snap    model.Snapshot
	present bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Get returns the latest snapshot.
func (s *Store) Get() (model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.present
}

// Sequence returns the message sequence of the latest snapshot.
func (s *Store) Sequence() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Message.Sequence, s.present
}

// Slot returns one slot of the latest snapshot.
func (s *Store) Slot(id model.SlotID) (model.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return model.Slot{}, false
	}
	return s.snap.Slot(id)
}

// Put records snap unless a snapshot with the same or a later sequence is held.
// It reports whether snap was stored.
func (s *Store) Put(snap model.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.present && snap.Message.Sequence <= s.snap.Message.Sequence {
		return false
	}
	s.snap = snap
	s.present = true
	return true
}
