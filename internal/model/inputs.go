package model

import (
	"fmt"
	"math"
)

const (
	// DefaultNumSimulations matches the slider default of the goal dashboard.
	DefaultNumSimulations = 1000

	// Guard rails for callers that accept untrusted input (API, CLI).
	MaxNumSimulations = 100_000
	MaxMonths         = 1200

	// MaxAnnualRate bounds |AnnualMeanReturn| and AnnualVolatility, and MaxAmount bounds the
	// currency inputs, so that a MaxMonths horizon still ends in finite balances.
	MaxAnnualRate = 1.0
	MaxAmount     = 1e12
)

// ProjectionInput is everything the projection engine needs for one run.
// Units:
// - InitialAmount, MonthlyContribution: currency units
// - Months: simulation horizon (0 => output is just the initial amount)
// - AnnualMeanReturn, AnnualVolatility: decimal fractions (0.07 = 7%)
type ProjectionInput struct {
	InitialAmount       float64 `json:"initial_amount" yaml:"initial_amount"`
	MonthlyContribution float64 `json:"monthly_contribution" yaml:"monthly_contribution"`
	Months              int     `json:"months" yaml:"months"`
	AnnualMeanReturn    float64 `json:"annual_mean_return" yaml:"annual_mean_return"`
	AnnualVolatility    float64 `json:"annual_volatility" yaml:"annual_volatility"`
	NumSimulations      int     `json:"num_simulations" yaml:"num_simulations"`
}

// InvalidInputError reports the first field of a ProjectionInput that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// WithDefaults returns a copy with NumSimulations defaulted when unset.
func (in ProjectionInput) WithDefaults() ProjectionInput {
	if in.NumSimulations == 0 {
		in.NumSimulations = DefaultNumSimulations
	}
	return in
}

// Validate rejects inputs the engine would otherwise turn into empty or NaN output.
// The engine functions themselves never call this; entry points (Engine.Simulate, API, CLI) do.
func (in ProjectionInput) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"initial_amount", in.InitialAmount},
		{"monthly_contribution", in.MonthlyContribution},
		{"annual_mean_return", in.AnnualMeanReturn},
		{"annual_volatility", in.AnnualVolatility},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InvalidInputError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	if in.InitialAmount < 0 {
		return &InvalidInputError{Field: "initial_amount", Reason: "must be >= 0"}
	}
	if in.MonthlyContribution < 0 {
		return &InvalidInputError{Field: "monthly_contribution", Reason: "must be >= 0"}
	}
	if in.InitialAmount > MaxAmount {
		return &InvalidInputError{Field: "initial_amount", Reason: fmt.Sprintf("must be <= %g", MaxAmount)}
	}
	if in.MonthlyContribution > MaxAmount {
		return &InvalidInputError{Field: "monthly_contribution", Reason: fmt.Sprintf("must be <= %g", MaxAmount)}
	}
	if math.Abs(in.AnnualMeanReturn) > MaxAnnualRate {
		return &InvalidInputError{Field: "annual_mean_return", Reason: fmt.Sprintf("must be within ±%g", MaxAnnualRate)}
	}
	if in.Months < 0 {
		return &InvalidInputError{Field: "months", Reason: "must be >= 0"}
	}
	if in.Months > MaxMonths {
		return &InvalidInputError{Field: "months", Reason: fmt.Sprintf("must be <= %d", MaxMonths)}
	}
	if in.AnnualVolatility < 0 {
		return &InvalidInputError{Field: "annual_volatility", Reason: "must be >= 0"}
	}
	if in.AnnualVolatility > MaxAnnualRate {
		return &InvalidInputError{Field: "annual_volatility", Reason: fmt.Sprintf("must be <= %g", MaxAnnualRate)}
	}
	if in.NumSimulations <= 0 {
		return &InvalidInputError{Field: "num_simulations", Reason: "must be > 0"}
	}
	if in.NumSimulations > MaxNumSimulations {
		return &InvalidInputError{Field: "num_simulations", Reason: fmt.Sprintf("must be <= %d", MaxNumSimulations)}
	}
	return nil
}
