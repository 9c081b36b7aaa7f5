package projection

import "math"

// DeterministicFutureValue is the closed-form value of principal compounded monthly plus an
// ordinary annuity of monthlyContribution, both at annualRate/12 per month.
//
// A zero rate degrades to straight-line accumulation. Inputs are not validated; negative
// values flow through the arithmetic.
func DeterministicFutureValue(principal, monthlyContribution float64, months int, annualRate float64) float64 {
	r := annualRate / 12
	if r == 0 {
		return principal + monthlyContribution*float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal*growth + monthlyContribution*((growth-1)/r)
}
