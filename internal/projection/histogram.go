package projection

import "math"

// DefaultHistogramBins is used when callers pass bins <= 0.
const DefaultHistogramBins = 20

// Bin is one equal-width bucket of final outcomes. Lower is inclusive; Upper is
// exclusive except for the last bin, which also holds the maximum.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets outcomes into equal-width bins spanning [min, max].
// If every outcome is equal they all land in the first bin. NaN and ±Inf are not
// counted; with no finite outcomes the result is nil.
func Histogram(outcomes []float64, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	finite := 0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range outcomes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite++
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if finite == 0 {
		return nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range outcomes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := 0
		if f := (v - lo) / width; width > 0 && f > 0 {
			idx = bins - 1
			if f < float64(bins-1) {
				idx = int(f)
			}
		}
		out[idx].Count++
	}
	return out
}
