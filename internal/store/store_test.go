package store

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"goal-forecast/internal/model"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestSeeded(t *testing.T) {
	s := Seeded(clock)
	goals := s.Goals()
	if len(goals) != 2 {
		t.Fatalf("got %d goals", len(goals))
	}
	if _, err := s.Goal("goal_trip_1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Goal("nope"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}

func TestGoalsReturnsCopies(t *testing.T) {
	s := Seeded(clock)
	goals := s.Goals()
	goals[1].Plan.Steps[0].Title = "changed"
	goals[0].CurrentAmount = -1

	g, _ := s.Goal("goal_trip_1")
	if g.Plan.Steps[0].Title == "changed" {
		t.Fatal("plan steps shared with caller")
	}
	h, _ := s.Goal("goal_house_1")
	if h.CurrentAmount != 12500 {
		t.Fatal("goal mutated through returned slice")
	}
}

func TestAddGoal(t *testing.T) {
	s := New(nil, clock)
	g, err := s.AddGoal(NewGoal{Name: " Boat ", TargetAmount: 5000, TargetDate: fixedNow.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(g.ID, "goal_") || g.Name != "Boat" || g.CurrentAmount != 0 || g.Plan != nil {
		t.Fatalf("goal = %+v", g)
	}
	if len(s.Goals()) != 1 {
		t.Fatal("goal not stored")
	}

	bad := []NewGoal{
		{TargetAmount: 1, TargetDate: fixedNow},
		{Name: "x", TargetDate: fixedNow},
		{Name: "x", TargetAmount: 1},
		{Name: "x", TargetAmount: 1, TargetDate: fixedNow, RiskProfile: "yolo"},
	}
	for i, ng := range bad {
		if _, err := s.AddGoal(ng); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
	if len(s.Goals()) != 1 {
		t.Fatal("invalid goals were stored")
	}
}

func TestApplyContribution(t *testing.T) {
	s := Seeded(clock)
	g, err := s.ApplyContribution("goal_trip_1", 0.1)
	if err != nil {
		t.Fatal(err)
	}
	g, err = s.ApplyContribution("goal_trip_1", 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if g.CurrentAmount != 8000.3 {
		t.Fatalf("current = %v, want 8000.3", g.CurrentAmount)
	}
	if len(g.Contributions) != 2 || g.Contributions[0].Type != model.ContributionManual || !g.Contributions[0].Date.Equal(fixedNow) {
		t.Fatalf("contributions = %+v", g.Contributions)
	}

	txs := s.Transactions()
	if len(txs) != 2 {
		t.Fatalf("got %d transactions", len(txs))
	}
	tx := txs[1]
	if tx.Type != "expense" || tx.Category != "Savings" || tx.Description != "Contribution to Trip to Neo-Tokyo" || tx.Amount != 0.2 {
		t.Fatalf("transaction = %+v", tx)
	}
}

func TestApplyContributionRejects(t *testing.T) {
	s := Seeded(clock)
	for _, amt := range []float64{0, -10, 0.001, math.NaN()} {
		if _, err := s.ApplyContribution("goal_trip_1", amt); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %v: got %v", amt, err)
		}
	}
	if _, err := s.ApplyContribution("missing", 10); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("got %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("rejected contributions were recorded")
	}
}

func TestSetPlan(t *testing.T) {
	s := Seeded(clock)
	plan := model.GoalPlan{
		FeasibilitySummary:  "ok",
		MonthlyContribution: 900,
		Steps:               []model.PlanStep{{Title: "a", Description: "b", Category: model.CategoryIncome}},
	}
	g, err := s.SetPlan("goal_house_1", plan)
	if err != nil {
		t.Fatal(err)
	}
	if g.Plan == nil || g.Plan.MonthlyContribution != 900 {
		t.Fatalf("plan = %+v", g.Plan)
	}
	plan.Steps[0].Title = "mutated"
	got, _ := s.Goal("goal_house_1")
	if got.Plan.Steps[0].Title != "a" {
		t.Fatal("stored plan aliases caller slice")
	}
	if _, err := s.SetPlan("missing", plan); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestConcurrentContributions(t *testing.T) {
	s := Seeded(clock)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ApplyContribution("goal_house_1", 1.01); err != nil {
				t.Error(err)
			}
			_ = s.Goals()
		}()
	}
	wg.Wait()
	g, _ := s.Goal("goal_house_1")
	if g.CurrentAmount != 12601 {
		t.Fatalf("current = %v, want 12601", g.CurrentAmount)
	}
	if len(s.Transactions()) != 100 {
		t.Fatalf("got %d transactions", len(s.Transactions()))
	}
	if got := s.Gamification().Score; got != 450+100*model.PointsExpense {
		t.Fatalf("score = %d", got)
	}
	if got := savingsBudget(t, s).Spent; got != 101 {
		t.Fatalf("savings spent = %v, want 101", got)
	}
}

func savingsBudget(t *testing.T, s *State) model.BudgetCategory {
	t.Helper()
	for _, b := range s.Budgets() {
		if b.ID == "savings" {
			return b
		}
	}
	t.Fatal("no savings budget")
	return model.BudgetCategory{}
}

func TestContributionUpdatesDerivedState(t *testing.T) {
	s := Seeded(clock)
	before := s.Gamification()
	if before.Score != 450 || before.Level != 3 || before.Progress != 25 || before.Credits != 225 {
		t.Fatalf("seed gamification = %+v", before)
	}
	dining := s.Budgets()[0]

	if _, err := s.ApplyContribution("goal_trip_1", 100); err != nil {
		t.Fatal(err)
	}

	if got := savingsBudget(t, s).Spent; got != 100 {
		t.Fatalf("savings spent = %v, want 100", got)
	}
	if s.Budgets()[0] != dining {
		t.Fatal("unrelated budget changed")
	}
	g := s.Gamification()
	if g.Score != 460 || g.Credits != 230 || g.Level != 3 || g.Progress != 30 {
		t.Fatalf("gamification = %+v", g)
	}
	// 170 carried + 100 crosses one 250 tree.
	im := s.Impact()
	if im.TreesPlanted != 13 || im.SpendingForNextTree != 20 {
		t.Fatalf("impact = %+v", im)
	}

	budgets := s.Budgets()
	budgets[0].Spent = -1
	if s.Budgets()[0].Spent == -1 {
		t.Fatal("budgets shared with caller")
	}
}

func TestContributionWithoutMatchingBudget(t *testing.T) {
	s := New(nil, clock)
	g, err := s.AddGoal(NewGoal{Name: "Bike", TargetAmount: 800, TargetDate: fixedNow.AddDate(0, 6, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyContribution(g.ID, 50); err != nil {
		t.Fatal(err)
	}
	if len(s.Budgets()) != 0 {
		t.Fatal("budget created implicitly")
	}
	if gm := s.Gamification(); gm.Score != 10 || gm.Level != 1 || gm.LevelName != "Financial Novice" {
		t.Fatalf("gamification = %+v", gm)
	}

	if _, err := s.AddBudget("Savings", 500); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyContribution(g.ID, 25.5); err != nil {
		t.Fatal(err)
	}
	if got := s.Budgets()[0].Spent; got != 25.5 {
		t.Fatalf("spent = %v, want 25.5", got)
	}
}

func TestAddBudget(t *testing.T) {
	s := New(nil, clock)
	b, err := s.AddBudget(" Home Office ", 300)
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "home-office" || b.Name != "Home Office" || b.Limit != 300 || b.Spent != 0 {
		t.Fatalf("budget = %+v", b)
	}
	if _, err := s.AddBudget("home office", 100); !errors.Is(err, ErrBudgetExists) {
		t.Fatalf("got %v, want ErrBudgetExists", err)
	}
	for _, limit := range []float64{0, -5, math.NaN()} {
		if _, err := s.AddBudget("Misc", limit); !errors.Is(err, ErrInvalidBudget) {
			t.Fatalf("limit %v: got %v, want ErrInvalidBudget", limit, err)
		}
	}
	if _, err := s.AddBudget("  ", 10); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("got %v, want ErrInvalidBudget", err)
	}
}
