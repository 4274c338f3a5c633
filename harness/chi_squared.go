package harness

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tutils/randtest/chisquared"
)

// ChiSquared runs a chi-squared goodness of fit test over k cells.
//
// A draw only counts towards the histogram once the cell it fell into has
// repeated independenceDepth times in a row, so for a depth above zero the
// test looks at runs of equal values rather than single values. The expected
// count per cell is n / k^(independenceDepth+1). The test passes when the
// statistic is below criticalValue.
func (t *Tester) ChiSquared(k, independenceDepth, n int, criticalValue float64) Result {
	t.begin(ChiSquaredTest,
		"k", k,
		"independence_depth", independenceDepth,
		"n", n,
		"critical_value", criticalValue,
	)
	res := Result{Name: ChiSquaredTest, Threshold: criticalValue}
	if k <= 0 || n <= 0 || independenceDepth < 0 {
		res.Err = errors.Errorf("invalid parameters k=%d independence_depth=%d n=%d", k, independenceDepth, n)
		t.logError("chi-squared test not run", res.Err)
		return t.finish(res)
	}

	observed := make([]int, k)
	expected := float64(n) / math.Pow(float64(k), float64(independenceDepth+1))

	repeats := 0
	last := t.bucket(k)
	for i := 0; i < n; i++ {
		if repeats >= independenceDepth {
			observed[last]++
		}
		next := t.bucket(k)
		if next == last {
			repeats++
		} else {
			repeats = 0
		}
		last = next
	}

	res.Statistic = chisquared.Statistic(observed, expected)
	res.Passed = res.Statistic < criticalValue
	return t.finish(res)
}

// ChiSquaredGoodnessOfFit is ChiSquared reduced to its verdict.
func (t *Tester) ChiSquaredGoodnessOfFit(k, independenceDepth, n int, criticalValue float64) bool {
	return t.ChiSquared(k, independenceDepth, n, criticalValue).Passed
}
