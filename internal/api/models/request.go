package models

import "goal-forecast/internal/projection"

// FutureValueRequest represents the request body for a closed-form future value
type FutureValueRequest struct {
	Principal           float64 `json:"principal"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Months              int     `json:"months"`
	AnnualRate          float64 `json:"annual_rate"`
}

// SimulateRequest represents the request body for a Monte Carlo run on explicit inputs.
// Return and volatility default to the risk profile, then to the server configuration.
type SimulateRequest struct {
	InitialAmount       float64  `json:"initial_amount"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	Months              int      `json:"months"`
	AnnualMeanReturn    *float64 `json:"annual_mean_return,omitempty"`
	AnnualVolatility    *float64 `json:"annual_volatility,omitempty"`
	RiskProfile         string   `json:"risk_profile,omitempty"`
	NumSimulations      int      `json:"num_simulations,omitempty"`
	Seed                *int64   `json:"seed,omitempty"`
	Target              float64  `json:"target,omitempty"`
	HistogramBins       int      `json:"histogram_bins,omitempty"`
	IncludeOutcomes     bool     `json:"include_outcomes,omitempty"` // default: false
}

// ProjectRequest represents the request body for a deterministic projection
type ProjectRequest struct {
	CurrentAmount       float64  `json:"current_amount"`
	TargetAmount        float64  `json:"target_amount"`
	Months              int      `json:"months" binding:"gte=0,lte=1200"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	AnnualReturn        float64  `json:"annual_return"`
	AnnualInflation     *float64 `json:"annual_inflation,omitempty"`
}

// CompareProjectionRequest represents a request to compare projection scenarios
type CompareProjectionRequest struct {
	Base      ProjectRequest        `json:"base" binding:"required"`
	Scenarios []projection.Scenario `json:"scenarios" binding:"required,min=1,max=20"`
}

// CreateGoalRequest represents the request body for a new goal
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate   string  `json:"target_date" binding:"required"` // YYYY-MM-DD
	IconName     string  `json:"icon_name,omitempty"`
	RiskProfile  string  `json:"risk_profile,omitempty"`
}

// ContributionRequest represents a manual contribution to a goal
type ContributionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// GoalSimulateRequest represents a Monte Carlo run seeded from a stored goal.
// A missing monthly contribution falls back to the goal's plan, then to the required saving.
type GoalSimulateRequest struct {
	MonthlyContribution *float64 `json:"monthly_contribution,omitempty"`
	RiskProfile         string   `json:"risk_profile,omitempty"`
	NumSimulations      int      `json:"num_simulations,omitempty"`
	Seed                *int64   `json:"seed,omitempty"`
	HistogramBins       int      `json:"histogram_bins,omitempty"`
	AnnualInflation     *float64 `json:"annual_inflation,omitempty"`
	Explain             bool     `json:"explain,omitempty"`
}

// RankRequest represents the query of a goal ranking
type RankRequest struct {
	NumSimulations int    `form:"num_simulations,omitempty"`
	Seed           *int64 `form:"seed,omitempty"`
	Limit          int    `form:"limit,omitempty"` // 0 = all
}

// CreateBudgetRequest represents a new budget category
type CreateBudgetRequest struct {
	Name  string  `json:"name" binding:"required"`
	Limit float64 `json:"limit" binding:"required,gt=0"`
}
