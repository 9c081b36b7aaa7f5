package projection

import "sort"

// ResultSet is the per-month percentile summary of a Monte Carlo run.
type ResultSet struct {
	MedianPath    []float64 `json:"median_path"`
	P10Path       []float64 `json:"p10_path"`
	P90Path       []float64 `json:"p90_path"`
	FinalOutcomes []float64 `json:"final_outcomes"`
}

// Analyze reduces paths to median/P10/P90 bands and the list of final balances.
// All paths must have the same length. Percentiles use the lower order statistic
// sorted[floor(n*q)] with no interpolation.
func Analyze(paths []Path) *ResultSet {
	rs := &ResultSet{
		MedianPath:    []float64{},
		P10Path:       []float64{},
		P90Path:       []float64{},
		FinalOutcomes: []float64{},
	}
	n := len(paths)
	if n == 0 {
		return rs
	}

	steps := len(paths[0])
	rs.MedianPath = make([]float64, steps)
	rs.P10Path = make([]float64, steps)
	rs.P90Path = make([]float64, steps)

	iMed, iP10, iP90 := orderIndex(n, 0.5), orderIndex(n, 0.1), orderIndex(n, 0.9)
	column := make([]float64, n)
	for m := 0; m < steps; m++ {
		for i, p := range paths {
			column[i] = p[m]
		}
		sort.Float64s(column)
		rs.MedianPath[m] = column[iMed]
		rs.P10Path[m] = column[iP10]
		rs.P90Path[m] = column[iP90]
	}

	rs.FinalOutcomes = make([]float64, n)
	for i, p := range paths {
		if len(p) > 0 {
			rs.FinalOutcomes[i] = p[len(p)-1]
		}
	}
	return rs
}

func orderIndex(n int, q float64) int {
	i := int(float64(n) * q)
	if i >= n {
		i = n - 1
	}
	return i
}

// SuccessProbability is the percentage of final outcomes at or above target.
// An empty result set reports 0.
func (rs *ResultSet) SuccessProbability(target float64) float64 {
	if rs == nil || len(rs.FinalOutcomes) == 0 {
		return 0
	}
	hits := 0
	for _, v := range rs.FinalOutcomes {
		if v >= target {
			hits++
		}
	}
	return float64(hits) / float64(len(rs.FinalOutcomes)) * 100
}

// Months is the simulated horizon, i.e. the band length minus the initial point.
func (rs *ResultSet) Months() int {
	if rs == nil || len(rs.MedianPath) == 0 {
		return 0
	}
	return len(rs.MedianPath) - 1
}

// Trials is the number of simulated paths.
func (rs *ResultSet) Trials() int {
	if rs == nil {
		return 0
	}
	return len(rs.FinalOutcomes)
}
