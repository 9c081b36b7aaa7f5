package projection

import (
	"math"

	"goal-forecast/internal/model"
)

// Path is one simulated balance trajectory. Index 0 is the initial amount and
// index m is the balance after month m.
type Path []float64

// RunMonteCarlo simulates in.NumSimulations trials sequentially from a single stream.
// Inputs are not validated; a non-positive trial count yields no paths.
func RunMonteCarlo(in model.ProjectionInput, src Source) []Path {
	if in.NumSimulations <= 0 {
		return []Path{}
	}
	step := newMonthlyStep(in)
	paths := make([]Path, 0, in.NumSimulations)
	for i := 0; i < in.NumSimulations; i++ {
		paths = append(paths, step.path(src))
	}
	return paths
}

// monthlyStep holds the per-month parameters derived from annual figures.
type monthlyStep struct {
	initial      float64
	contribution float64
	months       int
	drift        float64 // monthlyMean - monthlyVol^2/2
	vol          float64
}

func newMonthlyStep(in model.ProjectionInput) monthlyStep {
	mean := in.AnnualMeanReturn / 12
	vol := in.AnnualVolatility / math.Sqrt(12)
	months := in.Months
	if months < 0 {
		months = 0
	}
	return monthlyStep{
		initial:      in.InitialAmount,
		contribution: in.MonthlyContribution,
		months:       months,
		drift:        mean - vol*vol/2,
		vol:          vol,
	}
}

// path runs one trial. Each month draws a lognormal return, applies it, adds the
// contribution and clamps at zero.
func (s monthlyStep) path(src Source) Path {
	p := make(Path, 0, s.months+1)
	balance := s.initial
	p = append(p, balance)
	for m := 0; m < s.months; m++ {
		z := StandardNormal(src)
		ret := math.Exp(s.drift+s.vol*z) - 1
		balance = balance*(1+ret) + s.contribution
		if balance < 0 {
			balance = 0
		}
		p = append(p, balance)
	}
	return p
}
