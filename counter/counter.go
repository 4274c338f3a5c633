package counter

// Counter is a cumulative metric, used to count draws taken from a source
type Counter interface {
	Value() int64
	IncreaseRatePerSec() int64

	Add(n int64)
}
