package harness

import (
	"math"

	"github.com/pkg/errors"
)

// PiEstimate estimates pi from how many of points random points in the unit
// square fall inside the quarter circle. Result.Statistic is the signed
// relative error (estimate - pi) / pi; the test passes when its magnitude is
// below acceptedError.
func (t *Tester) PiEstimate(points int, acceptedError float64) Result {
	t.begin(PiTest, "points", points, "accepted_error", acceptedError)
	res := Result{Name: PiTest, Threshold: acceptedError}
	if points <= 0 {
		res.Err = errors.Errorf("invalid number of points %d", points)
		t.logError("monte carlo test not run", res.Err)
		return t.finish(res)
	}

	inside := 0
	for i := 0; i < points; i++ {
		x := t.draw()
		y := t.draw()
		if math.Hypot(x, y) < 1 {
			inside++
		}
	}

	pi := 4 * float64(inside) / float64(points)
	res.Statistic = (pi - math.Pi) / math.Pi
	t.info("msg", "pi estimated", "pi", pi, "percent_difference", res.Statistic*100)

	res.Passed = math.Abs(res.Statistic) < acceptedError
	return t.finish(res)
}

// PiEstimateMonteCarloSimulation is PiEstimate reduced to its verdict: true
// when the estimate is within acceptedError of pi.
func (t *Tester) PiEstimateMonteCarloSimulation(points int, acceptedError float64) bool {
	return t.PiEstimate(points, acceptedError).Passed
}
