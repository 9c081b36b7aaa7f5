package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMockGoals(t *testing.T) {
	goals := MockGoals()
	if len(goals) != 2 {
		t.Fatalf("got %d goals", len(goals))
	}
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			t.Fatalf("%s: %v", g.ID, err)
		}
	}
	if goals[1].Plan == nil || goals[1].Plan.MonthlyContribution != 450 || len(goals[1].Plan.Steps) != 3 {
		t.Fatalf("trip plan = %+v", goals[1].Plan)
	}
	// Callers get fresh copies.
	goals[0].CurrentAmount = 0
	if MockGoals()[0].CurrentAmount != 12500 {
		t.Fatal("mock goals share state")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGoalsYAML(t *testing.T) {
	path := writeFile(t, "goals.yaml", `
goals:
  - id: goal_car
    name: New car
    target_amount: 20000
    target_date: 2027-03-01
    current_amount: 2500
    risk_profile: aggressive
`)
	goals, err := LoadGoals(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 || goals[0].Name != "New car" || goals[0].CurrentAmount != 2500 {
		t.Fatalf("goals = %+v", goals)
	}
	if !goals[0].TargetDate.Equal(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("target date = %v", goals[0].TargetDate)
	}
}

func TestLoadGoalsJSON(t *testing.T) {
	path := writeFile(t, "goals.json", `{"goals":[{"id":"a","name":"A","target_amount":10,"target_date":"2030-01-01"}]}`)
	goals, err := LoadGoals(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 || goals[0].ID != "a" {
		t.Fatalf("goals = %+v", goals)
	}
}

func TestLoadGoalsErrors(t *testing.T) {
	tests := map[string]struct{ name, body string }{
		"extension":   {"goals.txt", ""},
		"missing id":  {"g.json", `{"goals":[{"name":"A","target_amount":10,"target_date":"2030-01-01"}]}`},
		"duplicate":   {"g.json", `{"goals":[{"id":"a","name":"A","target_amount":10,"target_date":"2030-01-01"},{"id":"a","name":"B","target_amount":10,"target_date":"2030-01-01"}]}`},
		"bad date":    {"g.json", `{"goals":[{"id":"a","name":"A","target_amount":10,"target_date":"soon"}]}`},
		"bad profile": {"g.json", `{"goals":[{"id":"a","name":"A","target_amount":10,"target_date":"2030-01-01","risk_profile":"yolo"}]}`},
		"bad target":  {"g.json", `{"goals":[{"id":"a","name":"A","target_amount":0,"target_date":"2030-01-01"}]}`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadGoals(writeFile(t, tt.name, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := LoadGoals(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveGoalsRoundTrip(t *testing.T) {
	for _, name := range []string{"goals.json", "goals.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := MockGoals()
			if err := SaveGoals(want, path); err != nil {
				t.Fatal(err)
			}
			got, err := LoadGoals(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(want) {
				t.Fatalf("got %d goals", len(got))
			}
			for i := range want {
				g, w := got[i], want[i]
				if g.ID != w.ID || g.Name != w.Name || g.TargetAmount != w.TargetAmount ||
					g.CurrentAmount != w.CurrentAmount || g.RiskProfile != w.RiskProfile ||
					!g.TargetDate.Equal(w.TargetDate) {
					t.Fatalf("goal %d = %+v, want %+v", i, g, w)
				}
			}
			if got[0].Plan != nil {
				t.Fatal("condo goal gained a plan")
			}
			if got[1].Plan == nil || len(got[1].Plan.Steps) != 3 || got[1].Plan.Steps[2].Category != "Investing" {
				t.Fatalf("trip plan = %+v", got[1].Plan)
			}
		})
	}
}

func TestSaveGoalsUnsupportedExtension(t *testing.T) {
	if err := SaveGoals(MockGoals(), filepath.Join(t.TempDir(), "goals.txt")); err == nil {
		t.Fatal("expected error")
	}
}
