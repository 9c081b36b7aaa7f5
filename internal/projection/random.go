package projection

import (
	"math"
	"math/rand/v2"
)

// Source is the uniform random stream the simulator draws from.
// Float64 must return values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG-backed source. Equal seeds give equal streams.
func NewSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// TrialSource returns the stream for one trial of a seeded run. The stream depends only on
// (seed, trial), so parallel runs produce the same paths regardless of worker count.
func TrialSource(seed int64, trial int) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(trial)+1))
}

// StandardNormal draws one N(0,1) variate with the Box-Muller transform.
// Exact zeros are redrawn so the logarithm stays finite.
func StandardNormal(src Source) float64 {
	u, v := 0.0, 0.0
	for u == 0 {
		u = src.Float64()
	}
	for v == 0 {
		v = src.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}
