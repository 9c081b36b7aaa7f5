package model

import (
	"fmt"
	"strings"
)

// RiskProfile selects a preset of return/volatility assumptions.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// Assumptions are the market parameters of a projection, as decimal fractions.
type Assumptions struct {
	AnnualMeanReturn float64 `json:"annual_mean_return" yaml:"annual_mean_return"`
	AnnualVolatility float64 `json:"annual_volatility" yaml:"annual_volatility"`
}

var riskPresets = map[RiskProfile]Assumptions{
	RiskConservative: {AnnualMeanReturn: 0.04, AnnualVolatility: 0.08},
	RiskModerate:     {AnnualMeanReturn: 0.07, AnnualVolatility: 0.15},
	RiskAggressive:   {AnnualMeanReturn: 0.10, AnnualVolatility: 0.22},
}

// RiskProfiles lists the presets from least to most volatile.
func RiskProfiles() []RiskProfile {
	return []RiskProfile{RiskConservative, RiskModerate, RiskAggressive}
}

// Assumptions returns the preset for p. Unknown or empty profiles fall back to moderate.
func (p RiskProfile) Assumptions() Assumptions {
	if a, ok := riskPresets[p]; ok {
		return a
	}
	return riskPresets[RiskModerate]
}

func ParseRiskProfile(s string) (RiskProfile, error) {
	p := RiskProfile(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := riskPresets[p]; !ok {
		return "", fmt.Errorf("unknown risk profile %q (want conservative, moderate or aggressive)", s)
	}
	return p, nil
}
