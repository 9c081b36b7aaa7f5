package models

import (
	"goal-forecast/internal/analysis"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

// FutureValueResponse represents the closed-form future value
type FutureValueResponse struct {
	FutureValue      float64 `json:"future_value"`
	TotalContributed float64 `json:"total_contributed"`
	Growth           float64 `json:"growth"`
}

// Bands is the per-month percentile envelope of a run
type Bands struct {
	MedianPath    []float64 `json:"median_path"`
	P10Path       []float64 `json:"p10_path"`
	P90Path       []float64 `json:"p90_path"`
	FinalOutcomes []float64 `json:"final_outcomes,omitempty"`
}

// SimulateResponse represents the response from a Monte Carlo run
type SimulateResponse struct {
	Seed               int64                    `json:"seed"`
	Input              model.ProjectionInput    `json:"input"`
	Months             int                      `json:"months"`
	Bands              Bands                    `json:"bands"`
	Histogram          []projection.Bin         `json:"histogram"`
	DeterministicFinal float64                  `json:"deterministic_final"`
	Summary            *analysis.OutcomeSummary `json:"summary,omitempty"`
}

// ProjectResponse represents a deterministic projection
type ProjectResponse struct {
	Points     []projection.ProjectionPoint `json:"points"`
	FinalValue float64                      `json:"final_value"`
	OnTrack    bool                         `json:"on_track"`
}

// CompareProjectionResponse represents the response from a comparison
type CompareProjectionResponse struct {
	Comparison []projection.ScenarioResult `json:"comparison"`
}

// RiskProfileInfo describes one preset of market assumptions
type RiskProfileInfo struct {
	Name        model.RiskProfile `json:"name"`
	Description string            `json:"description"`
	model.Assumptions
}

// GoalView is a goal plus the figures the dashboard derives from it
type GoalView struct {
	model.FinancialGoal
	Status                model.GoalStatus `json:"status"`
	Progress              float64          `json:"progress"`
	MonthsRemaining       int              `json:"months_remaining"`
	RequiredMonthlySaving float64          `json:"required_monthly_saving"`
}

// PlanResponse represents a generated plan
type PlanResponse struct {
	Goal     GoalView       `json:"goal"`
	Plan     model.GoalPlan `json:"plan"`
	Fallback bool           `json:"fallback"`
}

// GoalSimulateResponse represents a Monte Carlo run seeded from a goal
type GoalSimulateResponse struct {
	Goal                GoalView                     `json:"goal"`
	MonthlyContribution float64                      `json:"monthly_contribution"`
	Simulation          SimulateResponse             `json:"simulation"`
	Projection          []projection.ProjectionPoint `json:"projection"`
	Commentary          string                       `json:"commentary,omitempty"`
}

// RankResponse represents the response from ranking goals
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked goal
type Ranking struct {
	Rank                int                     `json:"rank"`
	GoalID              string                  `json:"goal_id"`
	Name                string                  `json:"name"`
	MonthlyContribution float64                 `json:"monthly_contribution"`
	Assumptions         model.Assumptions       `json:"assumptions"`
	Summary             analysis.OutcomeSummary `json:"summary"`
}

// BudgetView is a budget with its remaining allowance
type BudgetView struct {
	model.BudgetCategory
	Remaining float64 `json:"remaining"`
}

// ProgressResponse represents the engagement state: score, level and impact
type ProgressResponse struct {
	Gamification       model.Gamification `json:"gamification"`
	Impact             model.Impact       `json:"impact"`
	ProgressToNextTree float64            `json:"progress_to_next_tree"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
