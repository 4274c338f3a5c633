// Package lcg implements a 64-bit linear congruential generator that only
// hands out the high-order bits of its state.
package lcg

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/tutils/randtest"
	"github.com/tutils/randtest/generator"
)

var (
	_ randtest.Source = (*Generator)(nil)
	_ rand.Source     = (*Generator)(nil)
	_ rand.Source64   = (*Generator)(nil)
)

const (
	// Multiplier is the factor shared by many C library LCGs.
	Multiplier = 1103515245
	// Increment is the additive constant of the recurrence.
	Increment = 0xbeef
	// DefaultSeedModulus is a large prime the clock reading is reduced by
	// when no seed is given.
	DefaultSeedModulus = 7744144276301

	// low bits of an LCG are poor, so floats and doubles use fewer bits
	// than their mantissa could hold
	doubleBits = 48
	floatBits  = 29
)

// Generator holds the LCG state.
type Generator struct {
	seed int64
}

// New returns a generator with the given seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

// NewDefault returns a generator seeded from the clock.
func NewDefault() *Generator {
	return New(generator.ClockSeed() % DefaultSeedModulus)
}

// Next advances the state and returns its top bits bits.
// Next(0) is 0 and Next(64) is the whole state; bits outside [0, 64] is
// clamped to that range.
func (g *Generator) Next(bits int) uint64 {
	if bits < 0 {
		bits = 0
	} else if bits > 64 {
		bits = 64
	}
	g.seed = g.seed*Multiplier + Increment
	return uint64(g.seed) >> (64 - bits)
}

// Bool returns a pseudo-random boolean.
func (g *Generator) Bool() bool {
	return g.Next(1) == 0
}

// Float64 returns a value in [0, 1) with 48 significant bits.
func (g *Generator) Float64() float64 {
	v := g.Next(16)<<32 + g.Next(32)
	return float64(v) / (1 << doubleBits)
}

// Float32 returns a value in [0, 1) with 29 significant bits.
func (g *Generator) Float32() float32 {
	f := float32(g.Next(floatBits)) / (1 << floatBits)
	if f == 1 {
		// float32 cannot hold 29 bits, the largest draws round up
		f = math.Nextafter32(1, 0)
	}
	return f
}

// Int32 returns 32 random bits as a signed integer, so the whole int32
// range is possible.
func (g *Generator) Int32() int32 {
	return int32(g.Next(32))
}

// Intn returns a value in [0, n). A negative n is rejected with
// generator.ErrInvalidArgument. An n of 0 is accepted and always yields 0.
func (g *Generator) Intn(n int) (int, error) {
	if n < 0 {
		return 0, errors.Wrapf(generator.ErrInvalidArgument, "n must not be negative, got %d", n)
	}
	return int(float64(g.Float32()) * float64(n)), nil
}

// Int64 returns 64 random bits, the first 32 bit draw in the high word and
// the second in the low word.
func (g *Generator) Int64() int64 {
	hi := g.Next(32)
	lo := g.Next(32)
	return int64((hi << 32) + lo)
}

// Gaussian returns an approximately normal value. The transform is cheap
// and not exact: the sign comes from a coin flip and the magnitude from
// log10 of the product of two uniform draws.
func (g *Generator) Gaussian() float64 {
	sign := -1.0
	if g.Bool() {
		sign = 1
	}
	return sign * math.Log10(g.Float64()*g.Float64())
}

// State returns the current seed.
func (g *Generator) State() int64 {
	return g.seed
}

// Seed implements rand.Source.
func (g *Generator) Seed(seed int64) {
	g.seed = seed
}

// Uint64 implements rand.Source64.
func (g *Generator) Uint64() uint64 {
	return g.Next(64)
}

// Int63 implements rand.Source.
func (g *Generator) Int63() int64 {
	return int64(g.Next(63))
}
