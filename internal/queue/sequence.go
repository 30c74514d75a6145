package queue

import "sync/atomic"

// Sequencer numbers submitted commands in arrival order, starting at 1.
type Sequencer struct{ n atomic.Uint64 }

// Next returns the next command sequence number.
func (s *Sequencer) Next() uint64 { return s.n.Add(1) }
