package analysis

import (
	"math"
	"sort"

	"goal-forecast/internal/projection"
)

// OutcomeSummary describes the distribution of final balances for one target.
type OutcomeSummary struct {
	Count int `json:"count"`

	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	P05    float64 `json:"p05"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`

	Target             float64 `json:"target"`
	SuccessProbability float64 `json:"success_probability"`

	// ExpectedShortfall is the mean gap to target over the outcomes that miss it.
	ExpectedShortfall float64 `json:"expected_shortfall"`
}

// SummarizeOutcomes computes descriptive stats over rs.FinalOutcomes. P05 and P95 interpolate
// between order statistics; Median is the engine's median band at the horizon.
func SummarizeOutcomes(rs *projection.ResultSet, target float64) OutcomeSummary {
	s := OutcomeSummary{Target: target}
	if rs == nil || len(rs.FinalOutcomes) == 0 {
		return s
	}
	s.Count = len(rs.FinalOutcomes)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	shortSum := 0.0
	misses := 0
	vals := make([]float64, 0, s.Count)
	for _, v := range rs.FinalOutcomes {
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		if v < target {
			shortSum += target - v
			misses++
		}
	}
	sort.Float64s(vals)

	s.Min = minv
	s.Max = maxv
	s.Mean = sum / float64(s.Count)
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)
	if len(rs.MedianPath) > 0 {
		s.Median = rs.MedianPath[len(rs.MedianPath)-1]
	} else {
		s.Median = vals[len(vals)/2]
	}
	s.SuccessProbability = rs.SuccessProbability(target)
	if misses > 0 {
		s.ExpectedShortfall = shortSum / float64(misses)
	}
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
