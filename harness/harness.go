// Package harness runs statistical tests of randomness against a
// randtest.Source: a chi-squared goodness of fit test with an independence
// depth, an entropy test based on the zip compression ratio and a Monte Carlo
// estimate of pi.
//
// Every test draws fresh values from the shared source and is otherwise
// independent of the others. A Tester is not safe for concurrent use.
package harness

import (
	"fmt"
	"time"

	"github.com/go-kit/log/level"

	"github.com/tutils/randtest"
	"github.com/tutils/randtest/counter"
	"github.com/tutils/randtest/counter/period"
)

// Test names, as reported in Result.Name.
const (
	ChiSquaredTest = "chi-squared goodness of fit"
	EntropyTest    = "zip compression ratio entropy"
	PiTest         = "monte carlo pi estimate"
)

// draws are handed to the rate counter in batches
const flushEvery = 1 << 16

// Result is the outcome of one test run.
type Result struct {
	Name string
	// Statistic is the chi-squared value, the compression ratio or the
	// relative error of the pi estimate.
	Statistic float64
	// Threshold is the value Statistic was compared against.
	Threshold float64
	Passed    bool
	Draws     int64
	Elapsed   time.Duration
	// Err is set when the test could not run to completion. Such a test
	// never passes.
	Err error
}

func (r Result) String() string {
	verdict := "failed"
	if r.Passed {
		verdict = "passed"
	}
	if r.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", r.Name, verdict, r.Err)
	}
	return fmt.Sprintf("%s: %s statistic=%f threshold=%.3f draws=%d elapsed=%s",
		r.Name, verdict, r.Statistic, r.Threshold, r.Draws, r.Elapsed)
}

// Tester runs tests against a single source.
type Tester struct {
	src  randtest.Source
	opts *Options

	start    time.Time
	draws    counter.Counter
	pending  int64
	lastRate int64
}

// New create a new Tester drawing from src
func New(src randtest.Source, opts ...Option) *Tester {
	t := &Tester{
		src:  src,
		opts: newOptions(opts...),
	}
	t.draws = period.NewPeriodCounter(t.opts.ratePeriod)
	return t
}

// Verbose reports whether diagnostics are logged.
func (t *Tester) Verbose() bool {
	return t.opts.verbose
}

// SetVerbose turns diagnostics on or off.
func (t *Tester) SetVerbose(verbose bool) {
	t.opts.verbose = verbose
}

func (t *Tester) begin(name string, keyvals ...interface{}) {
	t.start = time.Now()
	t.draws = period.NewPeriodCounter(t.opts.ratePeriod)
	t.pending = 0
	t.lastRate = 0
	t.info(append([]interface{}{"msg", "running " + name + " test"}, keyvals...)...)
}

func (t *Tester) finish(res Result) Result {
	t.flush()
	res.Draws = t.draws.Value()
	res.Elapsed = time.Since(t.start)

	verdict := "failed"
	if res.Passed {
		verdict = "passed"
	}
	t.info(
		"msg", res.Name+" test "+verdict,
		"statistic", res.Statistic,
		"threshold", res.Threshold,
		"draws", res.Draws,
		"elapsed_seconds", res.Elapsed.Seconds(),
	)
	return res
}

func (t *Tester) draw() float64 {
	t.pending++
	if t.pending == flushEvery {
		t.flush()
	}
	return t.src.Float64()
}

// bucket maps a draw to [0, k). Draws outside [0, 1) are clamped.
func (t *Tester) bucket(k int) int {
	b := int(t.draw() * float64(k))
	if b < 0 {
		return 0
	}
	if b >= k {
		return k - 1
	}
	return b
}

func (t *Tester) flush() {
	if t.pending == 0 {
		return
	}
	t.draws.Add(t.pending)
	t.pending = 0

	if rate := t.draws.IncreaseRatePerSec(); rate != t.lastRate {
		t.lastRate = rate
		if t.opts.verbose {
			_ = level.Debug(t.opts.logger).Log("msg", "progress", "draws", t.draws.Value(), "draws_per_sec", rate)
		}
	}
}

func (t *Tester) info(keyvals ...interface{}) {
	if !t.opts.verbose {
		return
	}
	_ = level.Info(t.opts.logger).Log(keyvals...)
}

// errors are logged whether or not the tester is verbose
func (t *Tester) logError(msg string, err error) {
	_ = level.Error(t.opts.logger).Log("msg", msg, "err", err)
}
