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

// SaveGoals writes goals in the seed-file format LoadGoals reads, choosing JSON or YAML by
// extension. Contributions are not part of the seed format and are dropped.
func SaveGoals(goals []model.FinancialGoal, path string) error {
	f := goalFile{Goals: make([]goalRecord, 0, len(goals))}
	for _, g := range goals {
		f.Goals = append(f.Goals, goalRecord{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			TargetDate:    g.TargetDate.Format(model.DateLayout),
			CurrentAmount: g.CurrentAmount,
			IconName:      g.IconName,
			RiskProfile:   g.RiskProfile,
			Plan:          g.Plan,
		})
	}

	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err = json.MarshalIndent(f, "", "  ")
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(f)
	default:
		return fmt.Errorf("unsupported goals file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal goals: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write goals file: %w", err)
	}
	return nil
}
