package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ContributionType distinguishes one-off deposits from scheduled ones.
type ContributionType string

const (
	ContributionManual    ContributionType = "manual"
	ContributionRecurring ContributionType = "recurring"
)

type Contribution struct {
	ID     string           `json:"id" yaml:"id"`
	Amount float64          `json:"amount" yaml:"amount"`
	Date   time.Time        `json:"date" yaml:"date"`
	Type   ContributionType `json:"type" yaml:"type"`
}

// PlanCategory is the bucket an AI plan step belongs to.
// Keep these values stable; they are part of the plan JSON schema.
type PlanCategory string

const (
	CategorySavings   PlanCategory = "Savings"
	CategoryBudgeting PlanCategory = "Budgeting"
	CategoryInvesting PlanCategory = "Investing"
	CategoryIncome    PlanCategory = "Income"
)

type PlanStep struct {
	Title       string       `json:"title" yaml:"title" validate:"required"`
	Description string       `json:"description" yaml:"description" validate:"required"`
	Category    PlanCategory `json:"category" yaml:"category" validate:"required,oneof=Savings Budgeting Investing Income"`
}

// GoalPlan is a savings plan for a goal, usually produced by the insight client.
type GoalPlan struct {
	FeasibilitySummary  string     `json:"feasibilitySummary" yaml:"feasibility_summary" validate:"required"`
	MonthlyContribution float64    `json:"monthlyContribution" yaml:"monthly_contribution" validate:"gte=0"`
	Steps               []PlanStep `json:"steps" yaml:"steps" validate:"required,min=1,max=10,dive"`
}

// FinancialGoal is a long-horizon savings target.
type FinancialGoal struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	TargetAmount  float64        `json:"target_amount" yaml:"target_amount"`
	TargetDate    time.Time      `json:"target_date" yaml:"target_date"`
	CurrentAmount float64        `json:"current_amount" yaml:"current_amount"`
	IconName      string         `json:"icon_name,omitempty" yaml:"icon_name"`
	RiskProfile   RiskProfile    `json:"risk_profile,omitempty" yaml:"risk_profile"`
	Plan          *GoalPlan      `json:"plan,omitempty" yaml:"plan"`
	Contributions []Contribution `json:"contributions,omitempty" yaml:"contributions"`
}

// Validate checks the fields a goal needs before it can be simulated.
func (g FinancialGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("goal name is required")
	}
	if g.TargetAmount <= 0 {
		return errors.New("goal target amount must be > 0")
	}
	if g.TargetDate.IsZero() {
		return errors.New("goal target date is required")
	}
	if g.CurrentAmount < 0 {
		return errors.New("goal current amount must be >= 0")
	}
	return nil
}

// Progress is the saved share of the target, in percent.
func (g FinancialGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

func (g FinancialGoal) Status() GoalStatus {
	return StatusFromProgress(g.CurrentAmount, g.TargetAmount)
}

func (g FinancialGoal) MonthsRemaining(now time.Time) int {
	return MonthsBetween(now, g.TargetDate)
}

// RequiredMonthlySaving is the straight-line deposit needed to close the gap by the target date.
// A goal whose date has passed is treated as having one month left.
func (g FinancialGoal) RequiredMonthlySaving(now time.Time) float64 {
	months := g.MonthsRemaining(now)
	if months < 1 {
		months = 1
	}
	return (g.TargetAmount - g.CurrentAmount) / float64(months)
}

// ProjectionInput seeds an engine run from the goal: the balance starts at CurrentAmount and the
// horizon runs to TargetDate.
func (g FinancialGoal) ProjectionInput(now time.Time, a Assumptions, monthlyContribution float64, sims int) ProjectionInput {
	return ProjectionInput{
		InitialAmount:       g.CurrentAmount,
		MonthlyContribution: monthlyContribution,
		Months:              g.MonthsRemaining(now),
		AnnualMeanReturn:    a.AnnualMeanReturn,
		AnnualVolatility:    a.AnnualVolatility,
		NumSimulations:      sims,
	}.WithDefaults()
}

// PlannedContribution returns the plan's monthly contribution, or def when there is no plan.
func (g FinancialGoal) PlannedContribution(def float64) float64 {
	if g.Plan != nil && g.Plan.MonthlyContribution > 0 {
		return g.Plan.MonthlyContribution
	}
	return def
}

// MonthsBetween is the calendar month difference between two dates, floored at 0.
// The day of month is ignored: Jan 31 -> Feb 1 is one month.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year() - from.Year()) * 12
	months -= int(from.Month())
	months += int(to.Month())
	if months <= 0 {
		return 0
	}
	return months
}

// DateLayout is the calendar date format used for target dates in requests and seed files.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the date in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}

// Transaction is a ledger entry produced by state changes such as goal contributions.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}
