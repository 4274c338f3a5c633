package lcg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutils/randtest/generator"
)

func TestNextBoundaries(t *testing.T) {
	g := New(1)
	require.EqualValues(t, 1*Multiplier+Increment, g.Next(64))

	g = New(1)
	require.Zero(t, g.Next(0))
	// the state still advanced
	require.EqualValues(t, 1*Multiplier+Increment, g.State())
}

func TestNextClampsBits(t *testing.T) {
	require.Equal(t, New(3).Next(64), New(3).Next(65))
	require.Equal(t, New(3).Next(64), New(3).Next(1000))

	g := New(3)
	require.Zero(t, g.Next(-1))
	require.EqualValues(t, 3*Multiplier+Increment, g.State())
}

func TestNextWraps(t *testing.T) {
	seed := int64(math.MaxInt64)
	g := New(seed)
	want := uint64(seed)*Multiplier + Increment
	require.Equal(t, want, g.Next(64))
	require.Equal(t, want>>32, New(seed).Next(32))
}

func TestReproducible(t *testing.T) {
	a, b := New(98545715754651), New(98545715754651)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.Int32(), b.Int32())
		require.Equal(t, a.Gaussian(), b.Gaussian())
	}
}

func TestFloat64Range(t *testing.T) {
	for _, seed := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 7744144276300} {
		g := New(seed)
		for i := 0; i < 100000; i++ {
			f := g.Float64()
			if f < 0 || f >= 1 {
				t.Fatalf("seed %d draw %d out of range: %v", seed, i, f)
			}
		}
	}
}

func TestFloat64Composition(t *testing.T) {
	g, ref := New(12345), New(12345)
	hi := ref.Next(16)
	lo := ref.Next(32)
	require.Equal(t, float64(hi<<32|lo)/(1<<48), g.Float64())
}

func TestFloat32Range(t *testing.T) {
	g := New(7)
	for i := 0; i < 100000; i++ {
		f := g.Float32()
		if f < 0 || f >= 1 {
			t.Fatalf("draw %d out of range: %v", i, f)
		}
	}
}

func TestFloat32NeverOne(t *testing.T) {
	// the largest 29 bit values round to 1 in float32
	top := uint64(1<<floatBits - 1)
	require.Equal(t, float32(1), float32(top)/(1<<floatBits))

	// pick the seed whose next state has every bit set
	inv := uint64(Multiplier)
	for i := 0; i < 5; i++ {
		inv *= 2 - Multiplier*inv
	}
	seed := int64((^uint64(0) - Increment) * inv)
	require.Equal(t, top, New(seed).Next(floatBits))

	f := New(seed).Float32()
	require.Less(t, f, float32(1))
	require.Equal(t, math.Nextafter32(1, 0), f)
}

func TestBool(t *testing.T) {
	g, ref := New(99), New(99)
	trues := 0
	for i := 0; i < 10000; i++ {
		b := g.Bool()
		require.Equal(t, ref.Next(1) == 0, b)
		if b {
			trues++
		}
	}
	assert.InDelta(t, 5000, trues, 300)
}

func TestIntn(t *testing.T) {
	g := New(2024)
	for i := 0; i < 100000; i++ {
		n, err := g.Intn(5)
		require.NoError(t, err)
		if n < 0 || n >= 5 {
			t.Fatalf("draw %d out of range: %d", i, n)
		}
	}
}

func TestIntnNegative(t *testing.T) {
	g := New(2024)
	_, err := g.Intn(-1)
	require.Error(t, err)
	require.True(t, errors.Is(err, generator.ErrInvalidArgument))
	require.Contains(t, err.Error(), "-1")
}

func TestIntnZero(t *testing.T) {
	g := New(2024)
	for i := 0; i < 100; i++ {
		n, err := g.Intn(0)
		require.NoError(t, err)
		require.Zero(t, n)
	}
}

func TestInt32CoversSignedRange(t *testing.T) {
	g := New(5)
	var neg, pos bool
	for i := 0; i < 1000 && !(neg && pos); i++ {
		v := g.Int32()
		neg = neg || v < 0
		pos = pos || v > 0
	}
	assert.True(t, neg, "no negative value drawn")
	assert.True(t, pos, "no positive value drawn")
}

func TestInt64Composition(t *testing.T) {
	g, ref := New(31337), New(31337)
	for i := 0; i < 100; i++ {
		hi := ref.Next(32)
		lo := ref.Next(32)
		require.Equal(t, int64(hi<<32|lo), g.Int64())
	}
}

func TestGaussian(t *testing.T) {
	g, ref := New(42), New(42)
	for i := 0; i < 100; i++ {
		sign := -1.0
		if ref.Bool() {
			sign = 1
		}
		want := sign * math.Log10(ref.Float64()*ref.Float64())
		require.Equal(t, want, g.Gaussian())
	}
}

func TestRandSource(t *testing.T) {
	g := New(0)
	r := rand.New(g)
	for i := 0; i < 1000; i++ {
		v := r.Intn(10)
		require.True(t, v >= 0 && v < 10)
		require.True(t, r.Int63() >= 0)
	}

	g.Seed(77)
	require.EqualValues(t, 77, g.State())
	require.Equal(t, New(77).Next(64), g.Uint64())
}

func TestNewDefault(t *testing.T) {
	g := NewDefault()
	require.True(t, g.State() > -DefaultSeedModulus && g.State() < DefaultSeedModulus)
}
