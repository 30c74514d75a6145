// Package random provides seed generation and chance sources for the engine.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Chance yields uniformly distributed values in [0, 1). *rand.Rand satisfies it.
type Chance interface {
	Float64() float64
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeeded returns a generator for seed. A zero seed draws one from crypto/rand;
// the seed actually used is returned so runs can be reproduced.
func NewSeeded(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// Fixed always returns the same value. Fixed(0) makes every chance succeed,
// Fixed(1) makes every chance fail.
type Fixed float64

// Float64 implements Chance.
func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays values in order and repeats the last one when exhausted.
type Sequence struct {
	Values []float64
	i      int
}

// Float64 implements Chance.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 1
	}
	if s.i >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	v := s.Values[s.i]
	s.i++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int { return s.i }
