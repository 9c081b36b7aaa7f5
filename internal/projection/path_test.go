package projection

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)
	if len(bins) != 5 {
		t.Fatalf("got %d bins", len(bins))
	}
	wantCounts := []int{2, 2, 2, 2, 2}
	total := 0
	for i, b := range bins {
		if b.Count != wantCounts[i] {
			t.Errorf("bin %d count %d, want %d", i, b.Count, wantCounts[i])
		}
		total += b.Count
	}
	if total != 10 {
		t.Fatalf("total %d, want 10", total)
	}
	if bins[0].Lower != 0 || bins[4].Upper != 10 {
		t.Fatalf("range [%v, %v], want [0, 10]", bins[0].Lower, bins[4].Upper)
	}
}

func TestHistogramEdgeCases(t *testing.T) {
	if Histogram(nil, 10) != nil {
		t.Fatal("empty outcomes should give nil")
	}
	bins := Histogram([]float64{5, 5, 5}, 4)
	if bins[0].Count != 3 {
		t.Fatalf("equal outcomes: bin 0 count %d, want 3", bins[0].Count)
	}
	if len(Histogram([]float64{1, 2}, 0)) != DefaultHistogramBins {
		t.Fatal("bins <= 0 should use the default")
	}
}

func TestHistogramSkipsNonFinite(t *testing.T) {
	bins := Histogram([]float64{0, 10, math.Inf(1), math.NaN(), 5, math.Inf(-1)}, 2)
	if len(bins) != 2 {
		t.Fatalf("got %d bins", len(bins))
	}
	if bins[0].Lower != 0 || bins[1].Upper != 10 {
		t.Fatalf("range [%v, %v], want [0, 10]", bins[0].Lower, bins[1].Upper)
	}
	if bins[0].Count != 1 || bins[1].Count != 2 {
		t.Fatalf("counts = %d, %d, want 1, 2", bins[0].Count, bins[1].Count)
	}
	if Histogram([]float64{math.Inf(1), math.NaN()}, 4) != nil {
		t.Fatal("no finite outcomes should give nil")
	}
}

func TestProjectPath(t *testing.T) {
	points := ProjectPath(ProjectionSettings{
		CurrentAmount:       1000,
		TargetAmount:        1300,
		Months:              3,
		MonthlyContribution: 100,
	})
	want := []float64{1100, 1200, 1300}
	if len(points) != 3 {
		t.Fatalf("got %d points", len(points))
	}
	for i, p := range points {
		if p.Month != i+1 || p.ProjectedValue != want[i] || p.InflationAdjustedTarget != 1300 {
			t.Fatalf("point %d = %+v", i, p)
		}
	}
}

func TestProjectPathInflationAndRounding(t *testing.T) {
	points := ProjectPath(ProjectionSettings{
		CurrentAmount:   1000,
		TargetAmount:    1000,
		Months:          12,
		AnnualReturn:    0.07,
		AnnualInflation: 0.025,
	})
	last := points[len(points)-1]
	if last.InflationAdjustedTarget <= 1000 {
		t.Fatalf("inflation adjusted target did not grow: %v", last.InflationAdjustedTarget)
	}
	if last.ProjectedValue != round2(last.ProjectedValue) {
		t.Fatalf("value not rounded to cents: %v", last.ProjectedValue)
	}
	want := round2(DeterministicFutureValue(1000, 0, 12, 0.07))
	if math.Abs(last.ProjectedValue-want) > 0.011 {
		t.Fatalf("got %v, want %v", last.ProjectedValue, want)
	}
}

func TestFinalProjectedValueNoPoints(t *testing.T) {
	s := ProjectionSettings{CurrentAmount: 420}
	if got := FinalProjectedValue(s, ProjectPath(s)); got != 420 {
		t.Fatalf("got %v, want 420", got)
	}
}

func TestCompareScenarios(t *testing.T) {
	base := ProjectionSettings{CurrentAmount: 0, TargetAmount: 1200, Months: 12, MonthlyContribution: 50}
	hundred := 100.0
	results := CompareScenarios(base, []Scenario{
		{Name: "as is"},
		{MonthlyContribution: &hundred},
	})
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].OnTrack || results[0].FinalValue != 600 || results[0].Shortfall != 600 {
		t.Fatalf("base scenario = %+v", results[0])
	}
	if !results[1].OnTrack || results[1].FinalValue != 1200 || results[1].Name != "scenario-2" {
		t.Fatalf("override scenario = %+v", results[1])
	}
	if base.MonthlyContribution != 50 {
		t.Fatal("base mutated")
	}
}

func TestWriteBands(t *testing.T) {
	rs := Analyze([]Path{{100, 110, 120}, {100, 90, 80}})
	var buf bytes.Buffer
	if err := WriteBands(&buf, rs); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "month" || rows[0][3] != "p90" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][2] != "100.00" {
		t.Fatalf("month 0 median = %q", rows[1][2])
	}
}

func TestWriteBandsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.csv")
	if err := WriteBandsCSV(path, Analyze([]Path{{1, 2}})); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("month,p10,median,p90\n")) {
		t.Fatalf("unexpected file: %q", b)
	}
	if err := WriteBandsCSV(path, nil); err == nil {
		t.Fatal("expected error for nil result set")
	}
}
