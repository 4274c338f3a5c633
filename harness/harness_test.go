package harness

import (
	"bytes"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutils/randtest"
	"github.com/tutils/randtest/generator/lcg"
)

// cycle returns the centre of cell 0, 1, ..., k-1, 0, 1, ... in turn
func cycle(k int) randtest.Source {
	i := 0
	return randtest.SourceFunc(func() float64 {
		v := (float64(i%k) + 0.5) / float64(k)
		i++
		return v
	})
}

// counting wraps a source and counts the values drawn from it
type counting struct {
	src   randtest.Source
	draws int64
}

func (c *counting) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

// symbols draws uniformly from the first n of the 128 characters
func symbols(n int, seed int64) randtest.Source {
	r := rand.New(rand.NewSource(seed))
	return randtest.SourceFunc(func() float64 {
		return (float64(r.Intn(n)) + 0.5) / charRange
	})
}

func constant(v float64) randtest.Source {
	return randtest.SourceFunc(func() float64 { return v })
}

func quiet(src randtest.Source, opts ...Option) *Tester {
	return New(src, append([]Option{WithVerbose(false), WithScratchFs(afero.NewMemMapFs())}, opts...)...)
}

func TestChiSquaredUniform(t *testing.T) {
	src := &counting{src: cycle(10)}
	res := quiet(src).ChiSquared(10, 0, 1000, 16.919)

	require.NoError(t, res.Err)
	require.InDelta(t, 0, res.Statistic, 1e-9)
	require.True(t, res.Passed)
	// one draw to start, one per iteration
	require.EqualValues(t, 1001, res.Draws)
	require.EqualValues(t, 1001, src.draws)
}

func TestChiSquaredConstant(t *testing.T) {
	res := quiet(constant(0.55)).ChiSquared(10, 0, 1000, 16.919)

	require.NoError(t, res.Err)
	// (1000-100)^2/100 + 9 * 100^2/100
	require.InDelta(t, 9000, res.Statistic, 1e-9)
	require.False(t, res.Passed)
}

func TestChiSquaredIndependenceDepth(t *testing.T) {
	// a sequence that never repeats leaves every cell empty
	res := quiet(cycle(10)).ChiSquared(10, 1, 1000, 16.919)
	require.InDelta(t, 100, res.Statistic, 1e-9)
	require.False(t, res.Passed)

	// a constant sequence counts every draw after the first
	res = quiet(constant(0.55)).ChiSquared(10, 1, 1000, 16.919)
	expected := 10.0
	want := (999-expected)*(999-expected)/expected + 9*expected
	require.InDelta(t, want, res.Statistic, 1e-6)
	require.False(t, res.Passed)
}

func TestChiSquaredGoodSource(t *testing.T) {
	for depth := 0; depth <= 1; depth++ {
		tester := quiet(rand.New(rand.NewSource(1)))
		// 0.999 critical value for 9 degrees of freedom
		require.True(t, tester.ChiSquaredGoodnessOfFit(10, depth, 1000000, 27.877), "depth %d", depth)
	}
}

func TestChiSquaredClampsOutOfRangeDraws(t *testing.T) {
	res := quiet(constant(1)).ChiSquared(4, 0, 100, 1)
	require.NoError(t, res.Err)
	require.False(t, res.Passed)

	res = quiet(constant(-0.5)).ChiSquared(4, 0, 100, 1)
	require.NoError(t, res.Err)
	require.False(t, res.Passed)
}

func TestChiSquaredInvalid(t *testing.T) {
	for _, tc := range []struct{ k, depth, n int }{
		{0, 0, 10},
		{10, -1, 10},
		{10, 0, 0},
	} {
		src := &counting{src: cycle(10)}
		res := quiet(src).ChiSquared(tc.k, tc.depth, tc.n, 100)
		require.Error(t, res.Err)
		require.False(t, res.Passed)
		require.Zero(t, src.draws)
	}
}

func TestEntropyConstantFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	res := quiet(constant(0.5), WithScratchFs(fs)).Entropy(1<<16, 1.15)

	require.NoError(t, res.Err)
	require.False(t, res.Passed)
	require.Greater(t, res.Statistic, 10.0)
	require.EqualValues(t, 1<<16, res.Draws)
	assertNoScratchLeft(t, fs)
}

func TestEntropyRandomPasses(t *testing.T) {
	fs := afero.NewMemMapFs()
	tester := quiet(rand.New(rand.NewSource(7)), WithScratchFs(fs))
	res := tester.Entropy(1<<16, 1.2)

	require.NoError(t, res.Err)
	require.True(t, res.Passed)
	// 7 bits of entropy per 8 bit byte
	require.InDelta(t, 8.0/7, res.Statistic, 0.02)
	assertNoScratchLeft(t, fs)

	require.True(t, tester.EntropyWithZipRatio(1<<12, 1.2))
}

func TestEntropyLowEntropyFails(t *testing.T) {
	// 5 bits per byte, no literal repeats to find
	res := quiet(symbols(32, 11)).Entropy(1<<18, 1.15)
	require.NoError(t, res.Err)
	require.False(t, res.Passed)
	require.InDelta(t, 8.0/5, res.Statistic, 0.1)

	res = quiet(symbols(128, 11)).Entropy(1<<18, 1.15)
	require.NoError(t, res.Err)
	require.True(t, res.Passed)
}

func TestEntropyOnDisk(t *testing.T) {
	base := t.TempDir()
	scratch := filepath.Join(base, os.TempDir())
	require.NoError(t, os.MkdirAll(scratch, 0o755))

	fs := afero.NewBasePathFs(afero.NewOsFs(), base)
	res := quiet(lcg.New(816559), WithScratchFs(fs)).Entropy(1<<14, 1.2)
	require.NoError(t, res.Err)
	require.True(t, res.Passed)

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	require.Empty(t, entries)
}

type failingFs struct {
	afero.Fs
	suffix string
}

func (fs failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if strings.HasSuffix(name, fs.suffix) {
		return nil, errors.New("no space left on device")
	}
	return fs.Fs.OpenFile(name, flag, perm)
}

func TestEntropyScratchFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	for _, fs := range []afero.Fs{
		afero.NewReadOnlyFs(mem),
		failingFs{Fs: mem, suffix: ".zip"},
	} {
		var buf bytes.Buffer
		tester := quiet(constant(0.5), WithScratchFs(fs), WithLogger(log.NewLogfmtLogger(&buf)))
		res := tester.Entropy(1024, 1.15)

		require.Error(t, res.Err)
		require.False(t, res.Passed)
		// reported even when not verbose
		require.Contains(t, buf.String(), "level=error")
		assertNoScratchLeft(t, mem)
	}
}

func TestEntropyInvalid(t *testing.T) {
	res := quiet(constant(0.5)).Entropy(0, 1.15)
	require.Error(t, res.Err)
	require.False(t, res.Passed)
}

func assertNoScratchLeft(t *testing.T, fs afero.Fs) {
	t.Helper()
	entries, err := afero.ReadDir(fs, os.TempDir())
	if err != nil {
		// directory never created
		return
	}
	for _, e := range entries {
		t.Errorf("scratch file %s left behind", e.Name())
	}
}

func TestPiEstimate(t *testing.T) {
	for name, src := range map[string]randtest.Source{
		"math/rand": rand.New(rand.NewSource(1)),
		"lcg":       lcg.New(98545715754651),
	} {
		res := quiet(src).PiEstimate(1000000, 0.01)
		require.NoError(t, res.Err, name)
		require.True(t, res.Passed, "%s: relative error %f", name, res.Statistic)
		require.Less(t, res.Statistic, 0.01, name)
		require.Greater(t, res.Statistic, -0.01, name)
		require.EqualValues(t, 2000000, res.Draws, name)
	}
}

func TestPiEstimateBadSources(t *testing.T) {
	// every point inside: estimate 4
	res := quiet(constant(0)).PiEstimate(1000, 0.01)
	require.InDelta(t, (4-3.141592653589793)/3.141592653589793, res.Statistic, 1e-12)
	require.False(t, res.Passed)

	// every point outside: estimate 0, a large negative error
	res = quiet(constant(0.9)).PiEstimate(1000, 0.01)
	require.InDelta(t, -1, res.Statistic, 1e-12)
	require.False(t, res.Passed)
	require.False(t, quiet(constant(0.9)).PiEstimateMonteCarloSimulation(1000, 0.01))
}

func TestPiEstimateInvalid(t *testing.T) {
	res := quiet(constant(0)).PiEstimate(0, 0.01)
	require.Error(t, res.Err)
	require.False(t, res.Passed)
}

func TestBitmap(t *testing.T) {
	img := quiet(constant(0.25)).Bitmap(4, 3)
	for _, px := range img.Pix {
		require.EqualValues(t, 0, px)
	}
	img = quiet(constant(0.75)).Bitmap(4, 3)
	for _, px := range img.Pix {
		require.EqualValues(t, 0xff, px)
	}

	// pixels are filled column by column
	i := 0
	alternating := randtest.SourceFunc(func() float64 {
		i++
		return float64(i%2) * 0.5
	})
	img = quiet(alternating).Bitmap(4, 3)
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			want := uint8(0xff)
			if (x*3+y)%2 == 1 {
				want = 0
			}
			require.Equal(t, want, img.GrayAt(x, y).Y, "pixel %d,%d", x, y)
		}
	}
}

func TestWriteBitmap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, quiet(lcg.New(1)).WriteBitmap(16, 8, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	tester := New(cycle(10), WithLogger(log.NewLogfmtLogger(&buf)))
	require.True(t, tester.Verbose())

	tester.ChiSquared(10, 0, 100, 16.919)
	out := buf.String()
	require.Contains(t, out, "running chi-squared goodness of fit test")
	require.Contains(t, out, "critical_value=16.919")
	require.Contains(t, out, "passed")
	require.Contains(t, out, "elapsed_seconds")

	buf.Reset()
	tester.SetVerbose(false)
	require.False(t, tester.Verbose())
	require.True(t, tester.ChiSquaredGoodnessOfFit(10, 0, 100, 16.919))
	require.Zero(t, buf.Len())
}

func TestResultString(t *testing.T) {
	res := quiet(cycle(10)).ChiSquared(10, 0, 100, 16.919)
	require.Contains(t, res.String(), "chi-squared goodness of fit: passed")

	res = quiet(cycle(10)).ChiSquared(0, 0, 100, 16.919)
	require.Contains(t, res.String(), "failed")
	require.Contains(t, res.String(), "invalid parameters")
}

func TestProgressReported(t *testing.T) {
	var buf bytes.Buffer
	tester := New(cycle(10),
		WithLogger(log.NewLogfmtLogger(&buf)),
		WithRatePeriod(time.Nanosecond),
	)
	res := tester.ChiSquared(10, 0, 3*flushEvery, 16.919)
	require.True(t, res.Passed)
	require.EqualValues(t, 3*flushEvery+1, res.Draws)
	require.Contains(t, buf.String(), "msg=progress")
	require.Contains(t, buf.String(), "draws_per_sec=")
}
