// Package store owns the in-memory goal state of a running process.
//
// There is exactly one *State per process. It is shared by pointer and guarded by a
// RWMutex; callers change it only through the intent methods below and always get
// copies back.
package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goal-forecast/internal/data"
	"goal-forecast/internal/model"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrInvalidAmount = errors.New("contribution amount must be > 0")
	ErrInvalidBudget = errors.New("invalid budget")
	ErrBudgetExists  = errors.New("budget already exists")
)

// NewGoal is the user-supplied part of a goal. ID, current amount and plan are assigned by the store.
type NewGoal struct {
	Name         string
	TargetAmount float64
	TargetDate   time.Time
	IconName     string
	RiskProfile  model.RiskProfile
}

type State struct {
	mu           sync.RWMutex
	goals        []model.FinancialGoal
	transactions []model.Transaction
	budgets      []model.BudgetCategory
	gamification model.Gamification
	impact       model.Impact
	now          func() time.Time
}

// New creates a State holding copies of seed, with no budgets and a zero score.
// A nil clock means time.Now.
func New(seed []model.FinancialGoal, clock func() time.Time) *State {
	if clock == nil {
		clock = time.Now
	}
	s := &State{now: clock, gamification: model.GamificationForScore(0, 0)}
	for _, g := range seed {
		s.goals = append(s.goals, cloneGoal(g))
	}
	return s
}

// Seeded returns a State preloaded with the mock goals, budgets, score and impact.
func Seeded(clock func() time.Time) *State {
	s := New(data.MockGoals(), clock)
	s.budgets = data.MockBudgets()
	s.gamification = data.MockGamification()
	s.impact = data.MockImpact()
	return s
}

// Now is the store's clock.
func (s *State) Now() time.Time {
	return s.now()
}

func (s *State) Goals() []model.FinancialGoal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.FinancialGoal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, cloneGoal(g))
	}
	return out
}

func (s *State) Goal(id string) (model.FinancialGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.FinancialGoal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return cloneGoal(s.goals[i]), nil
}

// AddGoal validates ng and appends a new goal with no savings and no plan.
func (s *State) AddGoal(ng NewGoal) (model.FinancialGoal, error) {
	g := model.FinancialGoal{
		ID:           "goal_" + uuid.NewString(),
		Name:         strings.TrimSpace(ng.Name),
		TargetAmount: ng.TargetAmount,
		TargetDate:   ng.TargetDate,
		IconName:     ng.IconName,
		RiskProfile:  ng.RiskProfile,
	}
	if err := g.Validate(); err != nil {
		return model.FinancialGoal{}, err
	}
	if g.RiskProfile != "" {
		if _, err := model.ParseRiskProfile(string(g.RiskProfile)); err != nil {
			return model.FinancialGoal{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return cloneGoal(g), nil
}

// ApplyContribution adds amount to the goal's savings, rounded to cents, and records both a
// manual Contribution on the goal and a Savings expense in the transaction log.
func (s *State) ApplyContribution(goalID string, amount float64) (model.FinancialGoal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.FinancialGoal{}, ErrInvalidAmount
	}
	amt := decimal.NewFromFloat(amount).Round(2)
	if !amt.IsPositive() {
		return model.FinancialGoal{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(goalID)
	if i < 0 {
		return model.FinancialGoal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}
	now := s.now()
	g := &s.goals[i]

	g.CurrentAmount = decimal.NewFromFloat(g.CurrentAmount).Add(amt).Round(2).InexactFloat64()
	value := amt.InexactFloat64()
	g.Contributions = append(g.Contributions, model.Contribution{
		ID:     "contrib_" + uuid.NewString(),
		Amount: value,
		Date:   now,
		Type:   model.ContributionManual,
	})
	s.recordTransaction(model.Transaction{
		ID:          "goal_contrib_" + uuid.NewString(),
		Type:        model.TransactionExpense,
		Category:    "Savings",
		Description: "Contribution to " + g.Name,
		Amount:      value,
		Date:        now,
	})
	return cloneGoal(*g), nil
}

// recordTransaction appends tx to the log and updates the derived state: expenses plant
// trees and accrue to the budget named like their category, and every transaction scores
// points. Callers hold s.mu.
func (s *State) recordTransaction(tx model.Transaction) {
	s.transactions = append(s.transactions, tx)
	points := model.PointsIncome
	if tx.Type == model.TransactionExpense {
		points = model.PointsExpense
		s.impact = s.impact.AddSpending(tx.Amount)
		for i := range s.budgets {
			if strings.EqualFold(s.budgets[i].Name, tx.Category) {
				b := &s.budgets[i]
				b.Spent = decimal.NewFromFloat(b.Spent).Add(decimal.NewFromFloat(tx.Amount)).Round(2).InexactFloat64()
				break
			}
		}
	}
	s.gamification = s.gamification.Award(points)
}

// AddBudget creates an empty budget. Its id is the lower-cased name with spaces as dashes.
func (s *State) AddBudget(name string, limit float64) (model.BudgetCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.BudgetCategory{}, fmt.Errorf("%w: name is required", ErrInvalidBudget)
	}
	if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= 0 {
		return model.BudgetCategory{}, fmt.Errorf("%w: limit must be > 0", ErrInvalidBudget)
	}
	b := model.BudgetCategory{
		ID:    strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Name:  name,
		Limit: decimal.NewFromFloat(limit).Round(2).InexactFloat64(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.ID == b.ID || strings.EqualFold(existing.Name, b.Name) {
			return model.BudgetCategory{}, fmt.Errorf("%w: %s", ErrBudgetExists, b.Name)
		}
	}
	s.budgets = append(s.budgets, b)
	return b, nil
}

func (s *State) Budgets() []model.BudgetCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.BudgetCategory(nil), s.budgets...)
}

func (s *State) Gamification() model.Gamification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamification
}

func (s *State) Impact() model.Impact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.impact
}

// SetPlan replaces the goal's plan.
func (s *State) SetPlan(goalID string, plan model.GoalPlan) (model.FinancialGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(goalID)
	if i < 0 {
		return model.FinancialGoal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}
	p := clonePlan(plan)
	s.goals[i].Plan = &p
	return cloneGoal(s.goals[i]), nil
}

// Transactions returns the transaction log, oldest first.
func (s *State) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Transaction(nil), s.transactions...)
}

func (s *State) indexOf(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneGoal(g model.FinancialGoal) model.FinancialGoal {
	if g.Plan != nil {
		p := clonePlan(*g.Plan)
		g.Plan = &p
	}
	if g.Contributions != nil {
		g.Contributions = append([]model.Contribution(nil), g.Contributions...)
	}
	return g
}

func clonePlan(p model.GoalPlan) model.GoalPlan {
	if p.Steps != nil {
		p.Steps = append([]model.PlanStep(nil), p.Steps...)
	}
	return p
}
