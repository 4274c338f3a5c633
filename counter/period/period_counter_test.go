package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodCounter(t *testing.T) {
	c := NewPeriodCounter(time.Hour)
	c.Add(10)
	c.Add(5)
	require.EqualValues(t, 15, c.Value())
	// period not elapsed yet
	require.Zero(t, c.IncreaseRatePerSec())
}

func TestPeriodCounterRate(t *testing.T) {
	c := NewPeriodCounter(10 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	c.Add(1000)
	rate := c.IncreaseRatePerSec()
	require.Greater(t, rate, int64(0))
	// at least 20ms elapsed
	require.LessOrEqual(t, rate, int64(50000))
	t.Logf("rate %d/s", rate)
}
