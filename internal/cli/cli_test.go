package cli

import (
	"strings"
	"testing"

	"goal-forecast/internal/projection"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{0.105, "$0.11"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Errorf("FormatNumber negative = %q", got)
	}
	if got := FormatMoneyShort(2500000); got != "$2.5M" {
		t.Errorf("FormatMoneyShort = %q", got)
	}
	if got := FormatPercent(82.46); got != "82.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatRate(0.07); got != "7.00%" {
		t.Errorf("FormatRate = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Goals",
		Headers: []string{"Name", "Target"},
		Rows: [][]string{
			{"Condo", "$75,000.00"},
			{"---"},
			{"Trip", "$15,000.00"},
		},
	})
	for _, want := range []string{"Goals", "Condo", "$75,000.00", "Trip", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{1, 2, 3}); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline should be empty")
	}
}

func TestRenderHistogram(t *testing.T) {
	out := RenderHistogram([]projection.Bin{{Lower: 0, Upper: 1000, Count: 4}, {Lower: 1000, Upper: 2000, Count: 2}}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if strings.Count(lines[0], "█") != 10 || strings.Count(lines[1], "█") != 5 {
		t.Fatalf("bars not scaled:\n%s", out)
	}
}
