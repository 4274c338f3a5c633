// Package middlesquare implements von Neumann's middle-square method on an
// eight digit state. It is an example of a low quality generator and is
// kept around to give the harness something to fail.
package middlesquare

import (
	"github.com/tutils/randtest"
	"github.com/tutils/randtest/generator"
)

var _ randtest.Source = (*Generator)(nil)

const (
	// MaxSeed bounds the state to eight decimal digits, so the square always
	// fits in 16 digits.
	MaxSeed = 100000000

	// Increment is added after every squaring so the sequence does not
	// collapse to zero.
	Increment = 0xbeef

	scale = 1e-8
)

// Generator is a middle-square generator. The zero value is a valid generator
// seeded with 0.
type Generator struct {
	seed int64
}

// New returns a generator seeded with the last eight digits of seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed % MaxSeed}
}

// NewDefault returns a generator seeded from the clock.
func NewDefault() *Generator {
	return New(generator.ClockSeed())
}

// State returns the current seed.
func (g *Generator) State() int64 {
	return g.seed
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	// keep the middle digits of the square
	g.seed = g.seed * g.seed / 10000
	g.seed = (g.seed + Increment) % MaxSeed
	return float64(g.seed) * scale
}
