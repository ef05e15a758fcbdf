package main

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness the engine draws spawn trials, lifetimes and glyphs from.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewRNG creates a PCG generator. A zero seed is replaced with the current time.
func NewRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, 0))
}
