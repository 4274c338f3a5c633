package randtest

// Source produces pseudo-random float64 values in [0, 1).
//
// *math/rand.Rand satisfies Source, as do both generators in this module.
type Source interface {
	Float64() float64
}

// SourceFunc adapts an ordinary function to a Source
type SourceFunc func() float64

// Float64 implements Source.
func (f SourceFunc) Float64() float64 {
	return f()
}
