package projection

import (
	"fmt"
	"math"
	"strings"
)

// ProjectionSettings drive the deterministic month-by-month projection.
// Rates are decimal fractions (0.07 = 7%).
type ProjectionSettings struct {
	CurrentAmount       float64 `json:"current_amount" yaml:"current_amount"`
	TargetAmount        float64 `json:"target_amount" yaml:"target_amount"`
	Months              int     `json:"months" yaml:"months"`
	MonthlyContribution float64 `json:"monthly_contribution" yaml:"monthly_contribution"`
	AnnualReturn        float64 `json:"annual_return" yaml:"annual_return"`
	AnnualInflation     float64 `json:"annual_inflation" yaml:"annual_inflation"`
}

// ProjectionPoint is the state at the end of one month. Values are rounded to cents.
type ProjectionPoint struct {
	Month                   int     `json:"month"`
	ProjectedValue          float64 `json:"projected_value"`
	Target                  float64 `json:"target"`
	InflationAdjustedTarget float64 `json:"inflation_adjusted_target"`
}

// ProjectPath compounds the balance monthly at AnnualReturn/12 and adds the contribution,
// for months 1..Months. The target is grown at AnnualInflation/12 alongside it.
// Rounding applies to the reported values only; the running totals keep full precision.
func ProjectPath(s ProjectionSettings) []ProjectionPoint {
	if s.Months <= 0 {
		return []ProjectionPoint{}
	}
	rate := s.AnnualReturn / 12
	inflation := s.AnnualInflation / 12

	out := make([]ProjectionPoint, 0, s.Months)
	value := s.CurrentAmount
	adjusted := s.TargetAmount
	for i := 1; i <= s.Months; i++ {
		value = value*(1+rate) + s.MonthlyContribution
		adjusted = adjusted * (1 + inflation)
		out = append(out, ProjectionPoint{
			Month:                   i,
			ProjectedValue:          round2(value),
			Target:                  round2(s.TargetAmount),
			InflationAdjustedTarget: round2(adjusted),
		})
	}
	return out
}

// FinalProjectedValue is the last projected value, or the current amount when there are no points.
func FinalProjectedValue(s ProjectionSettings, points []ProjectionPoint) float64 {
	if len(points) == 0 {
		return s.CurrentAmount
	}
	return points[len(points)-1].ProjectedValue
}

// Scenario overrides parts of a base projection. Nil fields keep the base value.
type Scenario struct {
	Name                string   `json:"name" yaml:"name"`
	MonthlyContribution *float64 `json:"monthly_contribution,omitempty" yaml:"monthly_contribution"`
	AnnualReturn        *float64 `json:"annual_return,omitempty" yaml:"annual_return"`
	AnnualInflation     *float64 `json:"annual_inflation,omitempty" yaml:"annual_inflation"`
	Months              *int     `json:"months,omitempty" yaml:"months"`
}

// Apply returns base with the scenario's overrides.
func (sc Scenario) Apply(base ProjectionSettings) ProjectionSettings {
	if sc.MonthlyContribution != nil {
		base.MonthlyContribution = *sc.MonthlyContribution
	}
	if sc.AnnualReturn != nil {
		base.AnnualReturn = *sc.AnnualReturn
	}
	if sc.AnnualInflation != nil {
		base.AnnualInflation = *sc.AnnualInflation
	}
	if sc.Months != nil {
		base.Months = *sc.Months
	}
	return base
}

type ScenarioResult struct {
	Name                     string             `json:"name"`
	Settings                 ProjectionSettings `json:"settings"`
	FinalValue               float64            `json:"final_value"`
	FinalInflationAdjusted   float64            `json:"final_inflation_adjusted_target"`
	OnTrack                  bool               `json:"on_track"`
	OnTrackInflationAdjusted bool               `json:"on_track_inflation_adjusted"`
	Shortfall                float64            `json:"shortfall"`
}

// CompareScenarios projects each scenario against the same base. An unnamed scenario is
// labelled by its position. Results keep the input order.
func CompareScenarios(base ProjectionSettings, scenarios []Scenario) []ScenarioResult {
	out := make([]ScenarioResult, 0, len(scenarios))
	for i, sc := range scenarios {
		s := sc.Apply(base)
		points := ProjectPath(s)
		final := FinalProjectedValue(s, points)
		adjusted := s.TargetAmount
		if len(points) > 0 {
			adjusted = points[len(points)-1].InflationAdjustedTarget
		}
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			name = fmt.Sprintf("scenario-%d", i+1)
		}
		out = append(out, ScenarioResult{
			Name:                     name,
			Settings:                 s,
			FinalValue:               final,
			FinalInflationAdjusted:   adjusted,
			OnTrack:                  final >= s.TargetAmount,
			OnTrackInflationAdjusted: final >= adjusted,
			Shortfall:                round2(math.Max(0, s.TargetAmount-final)),
		})
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
