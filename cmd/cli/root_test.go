package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressPrinterIgnoresLateReports(t *testing.T) {
	var buf bytes.Buffer
	report := progressPrinter(&buf)
	report(250, 1000)
	report(1000, 1000)
	// A worker that finished earlier reports after the run is complete.
	report(750, 1000)
	report(500, 1000)
	report(999, 1000)

	out := buf.String()
	if !strings.HasSuffix(out, "[1000/1000]\n") {
		t.Fatalf("output %q does not end with the final count", out)
	}
	if strings.Contains(out, "750") || strings.Contains(out, "999") {
		t.Fatalf("late report printed: %q", out)
	}
	if strings.Count(out, "Simulating") != 2 {
		t.Fatalf("output %q, want two progress lines", out)
	}
}
