// Package generator holds what the middle-square and linear congruential
// generators share: the clock-derived default seed and the argument error.
//
// Neither generator is cryptographically secure or safe for concurrent use.
package generator

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a draw is requested with an argument
// outside of its domain.
var ErrInvalidArgument = errors.New("invalid argument")

// ClockSeed returns a nanosecond clock reading for seeding default-constructed
// generators. Two calls in quick succession may return close values.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}
