// Package random provides the seeded random sources that drive grid
// generation.
//
// Two sources are available. [LCG] is a 32-bit linear congruential generator
// with the constants used by p5.js, so a seed produces the same composition
// the browser sketch produced. [PCG] wraps math/rand/v2 and is the better
// statistical choice when compatibility does not matter.
//
// All generation code consumes a [Source] through [Below] and [Range], which
// mirror the sketch helpers random(n) and random(a, b). Call order matters:
// every consumer draws from one shared stream, so the same seed and the same
// sequence of calls always yield the same values.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Source produces uniformly distributed floats in [0, 1).
type Source interface {
	Float64() float64
}

// Kind names a random source implementation.
type Kind string

const (
	KindLCG Kind = "lcg"
	KindPCG Kind = "pcg"
)

// Kinds lists the supported source kinds in display order.
var Kinds = []Kind{KindLCG, KindPCG}

// New returns a freshly seeded source of the given kind.
// An empty kind selects [KindLCG].
func New(kind Kind, seed uint64) (Source, error) {
	switch kind {
	case KindLCG, "":
		return NewLCG(seed), nil
	case KindPCG:
		return NewPCG(seed), nil
	default:
		return nil, fmt.Errorf("unknown random source %q (must be one of: lcg, pcg)", kind)
	}
}

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// LCG is the linear congruential generator used by p5.js randomSeed/random.
// The state is the seed truncated to 32 bits.
type LCG struct {
	state uint32
}

// NewLCG seeds an LCG. Only the low 32 bits of seed are used.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: uint32(seed)}
}

// Float64 advances the state and returns state / 2^32.
func (l *LCG) Float64() float64 {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return float64(l.state) / lcgModulus
}

// PCG is a math/rand/v2 PCG stream.
type PCG struct {
	r *rand.Rand
}

// NewPCG creates a deterministic PCG source from seed.
func NewPCG(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next value in [0, 1).
func (p *PCG) Float64() float64 { return p.r.Float64() }

// Below returns floor(random(n)): an integer in [0, n) for n > 0.
// It returns 0 when n <= 0.
func Below(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(math.Floor(src.Float64() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// Range returns random(lo, hi): a float in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
