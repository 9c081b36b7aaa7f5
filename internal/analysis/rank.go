package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

// RankOptions controls how each goal is simulated before ranking.
type RankOptions struct {
	Now            time.Time
	Seed           int64
	NumSimulations int
	// DefaultProfile applies to goals without a risk profile.
	DefaultProfile model.RiskProfile
}

type RankedGoal struct {
	Goal                model.FinancialGoal `json:"goal"`
	Assumptions         model.Assumptions   `json:"assumptions"`
	MonthlyContribution float64             `json:"monthly_contribution"`
	Summary             OutcomeSummary      `json:"summary"`
}

// RankGoals simulates every goal with its risk profile's assumptions and its planned (or
// required) monthly contribution, then sorts descending by success probability. Ties go to
// the lower goal ID. Each goal uses the same seed so rankings are reproducible.
func RankGoals(ctx context.Context, goals []model.FinancialGoal, engine *projection.Engine, opts RankOptions) ([]RankedGoal, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is nil")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]RankedGoal, 0, len(goals))
	for _, g := range goals {
		profile := g.RiskProfile
		if profile == "" {
			profile = opts.DefaultProfile
		}
		a := profile.Assumptions()
		contribution := g.PlannedContribution(max(g.RequiredMonthlySaving(now), 0))
		in := g.ProjectionInput(now, a, contribution, opts.NumSimulations)

		rs, err := engine.Simulate(ctx, in, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		out = append(out, RankedGoal{
			Goal:                g,
			Assumptions:         a,
			MonthlyContribution: contribution,
			Summary:             SummarizeOutcomes(rs, g.TargetAmount),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Summary.SuccessProbability, out[j].Summary.SuccessProbability
		if pi != pj {
			return pi > pj
		}
		return out[i].Goal.ID < out[j].Goal.ID
	})
	return out, nil
}
