package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestProjectionInputValidate(t *testing.T) {
	valid := ProjectionInput{
		InitialAmount:       1000,
		MonthlyContribution: 100,
		Months:              12,
		AnnualMeanReturn:    0.07,
		AnnualVolatility:    0.15,
		NumSimulations:      100,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	edge := valid
	edge.AnnualMeanReturn, edge.AnnualVolatility, edge.Months = -MaxAnnualRate, MaxAnnualRate, MaxMonths
	if err := edge.Validate(); err != nil {
		t.Fatalf("bounds are inclusive: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(*ProjectionInput)
		field string
	}{
		{"negative months", func(in *ProjectionInput) { in.Months = -1 }, "months"},
		{"too many months", func(in *ProjectionInput) { in.Months = MaxMonths + 1 }, "months"},
		{"zero sims", func(in *ProjectionInput) { in.NumSimulations = 0 }, "num_simulations"},
		{"too many sims", func(in *ProjectionInput) { in.NumSimulations = MaxNumSimulations + 1 }, "num_simulations"},
		{"negative vol", func(in *ProjectionInput) { in.AnnualVolatility = -0.1 }, "annual_volatility"},
		{"nan return", func(in *ProjectionInput) { in.AnnualMeanReturn = math.NaN() }, "annual_mean_return"},
		{"inf initial", func(in *ProjectionInput) { in.InitialAmount = math.Inf(1) }, "initial_amount"},
		{"negative initial", func(in *ProjectionInput) { in.InitialAmount = -1 }, "initial_amount"},
		{"negative contribution", func(in *ProjectionInput) { in.MonthlyContribution = -5 }, "monthly_contribution"},
		{"huge initial", func(in *ProjectionInput) { in.InitialAmount = 1e300 }, "initial_amount"},
		{"huge contribution", func(in *ProjectionInput) { in.MonthlyContribution = MaxAmount * 2 }, "monthly_contribution"},
		{"extreme return", func(in *ProjectionInput) { in.AnnualMeanReturn = 12 }, "annual_mean_return"},
		{"extreme negative return", func(in *ProjectionInput) { in.AnnualMeanReturn = -1.5 }, "annual_mean_return"},
		{"extreme vol", func(in *ProjectionInput) { in.AnnualVolatility = 3 }, "annual_volatility"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mut(&in)
			var invalid *InvalidInputError
			if err := in.Validate(); !errors.As(err, &invalid) {
				t.Fatalf("got %v, want *InvalidInputError", err)
			}
			if invalid.Field != tt.field {
				t.Fatalf("field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	if got := (ProjectionInput{}).WithDefaults().NumSimulations; got != DefaultNumSimulations {
		t.Fatalf("got %d", got)
	}
	if got := (ProjectionInput{NumSimulations: 7}).WithDefaults().NumSimulations; got != 7 {
		t.Fatalf("explicit value overwritten: %d", got)
	}
}

func TestStatusFromProgress(t *testing.T) {
	tests := []struct {
		current, target float64
		want            GoalStatus
	}{
		{100, 100, StatusAchieved},
		{150, 100, StatusAchieved},
		{61, 100, StatusOnTrack},
		{60, 100, StatusNeedsAttention},
		{0, 100, StatusNeedsAttention},
		{10, 0, StatusNeedsAttention},
	}
	for _, tt := range tests {
		if got := StatusFromProgress(tt.current, tt.target); got != tt.want {
			t.Errorf("(%v, %v): got %s, want %s", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{d(2025, 1, 31), d(2025, 2, 1), 1},
		{d(2025, 1, 1), d(2026, 1, 1), 12},
		{d(2025, 6, 15), d(2025, 6, 30), 0},
		{d(2026, 1, 1), d(2025, 1, 1), 0},
	}
	for _, tt := range tests {
		if got := MonthsBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %d, want %d", tt.from.Format(DateLayout), tt.to.Format(DateLayout), got, tt.want)
		}
	}
}

func TestGoalHelpers(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := FinancialGoal{
		ID:            "g",
		Name:          "Car",
		TargetAmount:  12000,
		TargetDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentAmount: 3000,
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if g.Progress() != 25 {
		t.Fatalf("progress = %v", g.Progress())
	}
	if g.RequiredMonthlySaving(now) != 750 {
		t.Fatalf("required = %v", g.RequiredMonthlySaving(now))
	}
	if g.PlannedContribution(1) != 1 {
		t.Fatal("expected default without a plan")
	}
	g.Plan = &GoalPlan{MonthlyContribution: 500}
	if g.PlannedContribution(1) != 500 {
		t.Fatal("expected plan contribution")
	}

	in := g.ProjectionInput(now, RiskAggressive.Assumptions(), 500, 0)
	if in.InitialAmount != 3000 || in.Months != 12 || in.NumSimulations != DefaultNumSimulations {
		t.Fatalf("input = %+v", in)
	}
	if in.AnnualMeanReturn != 0.10 || in.AnnualVolatility != 0.22 {
		t.Fatalf("assumptions not applied: %+v", in)
	}

	// Past target dates count as one month left.
	late := now.AddDate(3, 0, 0)
	if g.RequiredMonthlySaving(late) != 9000 {
		t.Fatalf("overdue required = %v", g.RequiredMonthlySaving(late))
	}
}

func TestGoalValidate(t *testing.T) {
	base := FinancialGoal{Name: "x", TargetAmount: 1, TargetDate: time.Now()}
	bad := []FinancialGoal{
		{TargetAmount: 1, TargetDate: time.Now()},
		{Name: "x", TargetDate: time.Now()},
		{Name: "x", TargetAmount: 1},
		{Name: "x", TargetAmount: 1, TargetDate: time.Now(), CurrentAmount: -1},
	}
	if err := base.Validate(); err != nil {
		t.Fatal(err)
	}
	for i, g := range bad {
		if g.Validate() == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestParseRiskProfile(t *testing.T) {
	p, err := ParseRiskProfile(" Aggressive ")
	if err != nil || p != RiskAggressive {
		t.Fatalf("got %q, %v", p, err)
	}
	if _, err := ParseRiskProfile("yolo"); err == nil {
		t.Fatal("expected error")
	}
	if RiskProfile("").Assumptions() != RiskModerate.Assumptions() {
		t.Fatal("empty profile should fall back to moderate")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2029-12-31")
	if err != nil || !got.Equal(time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, err := ParseDate("2029-12-31T10:00:00+02:00"); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"", "31/12/2029"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestGamificationForScore(t *testing.T) {
	tests := []struct {
		score    int
		level    int
		name     string
		progress float64
	}{
		{0, 1, "Financial Novice", 0},
		{199, 1, "Financial Novice", 99.5},
		{200, 2, "Budgeting Apprentice", 0},
		{450, 3, "Savings Specialist", 25},
		{799, 4, "Investment Adept", 99.5},
		{800, 5, "Wealth Master", 0},
		{1300, 7, "Wealth Master", 50},
	}
	for _, tt := range tests {
		g := GamificationForScore(tt.score, 0)
		if g.Level != tt.level || g.LevelName != tt.name || g.Progress != tt.progress {
			t.Errorf("score %d: got level %d %q progress %v, want %d %q %v",
				tt.score, g.Level, g.LevelName, g.Progress, tt.level, tt.name, tt.progress)
		}
	}
}

func TestGamificationAward(t *testing.T) {
	g := GamificationForScore(190, 7).Award(PointsExpense)
	if g.Score != 200 || g.Level != 2 || g.Progress != 0 || g.Credits != 12 {
		t.Fatalf("got %+v", g)
	}
	g = g.Award(PointsIncome)
	if g.Score != 220 || g.Credits != 22 || g.Progress != 10 {
		t.Fatalf("got %+v", g)
	}
	if g.Award(0).Credits != g.Credits {
		t.Fatal("zero award changed credits")
	}
}

func TestImpactAddSpending(t *testing.T) {
	tests := []struct {
		start     Impact
		amount    float64
		trees     int
		remaining float64
	}{
		{Impact{TreesPlanted: 12, SpendingForNextTree: 170}, 50, 12, 220},
		{Impact{TreesPlanted: 12, SpendingForNextTree: 170}, 80, 13, 0},
		{Impact{}, 600, 2, 100},
		{Impact{SpendingForNextTree: 0.5}, 0.25, 0, 0.75},
	}
	for _, tt := range tests {
		got := tt.start.AddSpending(tt.amount)
		if got.TreesPlanted != tt.trees || got.SpendingForNextTree != tt.remaining {
			t.Errorf("%+v + %v = %+v, want %d trees, %v carried", tt.start, tt.amount, got, tt.trees, tt.remaining)
		}
	}
	if p := (Impact{SpendingForNextTree: 125}).ProgressToNextTree(); p != 50 {
		t.Fatalf("progress = %v", p)
	}
	if r := (BudgetCategory{Limit: 400, Spent: 410.5}).Remaining(); r != -10.5 {
		t.Fatalf("remaining = %v", r)
	}
}
