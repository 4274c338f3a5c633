package period

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tutils/randtest/counter"
)

var _ counter.Counter = &periodCounter{}

// periodCounter recomputes its rate at most once per period
type periodCounter struct {
	value              int64
	period             time.Duration
	increaseRatePerSec int64

	lastValue int64
	lastTime  time.Time
	mut       sync.Mutex
}

func NewPeriodCounter(period time.Duration) counter.Counter {
	return &periodCounter{
		period:   period,
		lastTime: time.Now(),
	}
}

// Value implements Counter.
func (c *periodCounter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// IncreaseRatePerSec implements Counter.
func (c *periodCounter) IncreaseRatePerSec() int64 {
	return atomic.LoadInt64(&c.increaseRatePerSec)
}

// Add implements Counter.
func (c *periodCounter) Add(n int64) {
	atomic.AddInt64(&c.value, n)
	c.check()
}

func (c *periodCounter) check() {
	c.mut.Lock()
	defer c.mut.Unlock()

	elapsed := time.Since(c.lastTime)
	if elapsed < c.period {
		return
	}

	value := c.Value()
	atomic.StoreInt64(&c.increaseRatePerSec, int64(float64(value-c.lastValue)/elapsed.Seconds()))
	c.lastValue = value
	c.lastTime = time.Now()
}
