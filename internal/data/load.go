package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"goal-forecast/internal/model"
)

// goalFile is the on-disk shape of a goal seed file.
//
// Example (YAML):
//
//	goals:
//	  - id: goal_car
//	    name: New car
//	    target_amount: 20000
//	    target_date: 2027-03-01
//	    current_amount: 2500
type goalFile struct {
	Goals []goalRecord `json:"goals" yaml:"goals"`
}

// goalRecord accepts dates as YYYY-MM-DD, matching how people write them in seed files.
type goalRecord struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	TargetAmount  float64           `json:"target_amount" yaml:"target_amount"`
	TargetDate    string            `json:"target_date" yaml:"target_date"`
	CurrentAmount float64           `json:"current_amount" yaml:"current_amount"`
	IconName      string            `json:"icon_name" yaml:"icon_name"`
	RiskProfile   model.RiskProfile `json:"risk_profile" yaml:"risk_profile"`
	Plan          *model.GoalPlan   `json:"plan" yaml:"plan"`
}

// LoadGoals reads a goal seed file, picking JSON or YAML by extension.
func LoadGoals(path string) ([]model.FinancialGoal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadGoalsJSON(path)
	case ".yaml", ".yml":
		return LoadGoalsYAML(path)
	default:
		return nil, fmt.Errorf("unsupported goals file extension %q", filepath.Ext(path))
	}
}

func LoadGoalsJSON(path string) ([]model.FinancialGoal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f goalFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse goals json: %w", err)
	}
	return f.toGoals()
}

func LoadGoalsYAML(path string) ([]model.FinancialGoal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f goalFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse goals yaml: %w", err)
	}
	return f.toGoals()
}

func (f goalFile) toGoals() ([]model.FinancialGoal, error) {
	out := make([]model.FinancialGoal, 0, len(f.Goals))
	seen := map[string]bool{}
	for i, r := range f.Goals {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("goal %d: id is required", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("goal %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true

		target, err := model.ParseDate(r.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", r.ID, err)
		}
		if r.RiskProfile != "" {
			if _, err := model.ParseRiskProfile(string(r.RiskProfile)); err != nil {
				return nil, fmt.Errorf("goal %s: %w", r.ID, err)
			}
		}
		g := model.FinancialGoal{
			ID:            r.ID,
			Name:          r.Name,
			TargetAmount:  r.TargetAmount,
			TargetDate:    target,
			CurrentAmount: r.CurrentAmount,
			IconName:      r.IconName,
			RiskProfile:   r.RiskProfile,
			Plan:          r.Plan,
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("goal %s: %w", r.ID, err)
		}
		out = append(out, g)
	}
	return out, nil
}
