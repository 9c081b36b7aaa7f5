package insight

import (
	"context"
	"fmt"
	"strings"

	"goal-forecast/internal/analysis"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
)

// ExplainForecast returns a short commentary on a simulated goal. It never fails: when the
// client is disabled or the call errors, the commentary is built from the numbers.
func (c *Client) ExplainForecast(ctx context.Context, g model.FinancialGoal, contribution float64, s analysis.OutcomeSummary) string {
	if !c.Enabled() {
		return FallbackExplanation(g, contribution, s)
	}
	prompt := fmt.Sprintf(`Explain this savings forecast in 2-3 plain sentences. Mention the chance of success and one practical suggestion.

Goal: %s
Target Amount: $%.2f
Target Date: %s
Current Savings: $%.2f
Monthly Contribution: $%.2f
Simulated paths: %d
Chance of reaching the target: %.1f%%
Median final balance: $%.2f
Pessimistic (5th percentile) final balance: $%.2f
Average shortfall when missing the target: $%.2f`,
		g.Name, g.TargetAmount, g.TargetDate.Format(model.DateLayout), g.CurrentAmount, contribution,
		s.Count, s.SuccessProbability, s.Median, s.P05, s.ExpectedShortfall)

	text, err := c.complete(ctx, prompt, false, 250)
	if err != nil || strings.TrimSpace(text) == "" {
		c.logger.WarnContext(ctx, "forecast explanation failed, using fallback",
			applog.NewFields().WithOperation(applog.OpExplain).WithGoal(g.ID).WithError(err).ToSlice()...,
		)
		return FallbackExplanation(g, contribution, s)
	}
	return strings.TrimSpace(text)
}

// FallbackExplanation summarizes a forecast without calling a model.
func FallbackExplanation(g model.FinancialGoal, contribution float64, s analysis.OutcomeSummary) string {
	if s.Count == 0 {
		return fmt.Sprintf("There is nothing to simulate for %s yet.", g.Name)
	}
	var verdict string
	switch {
	case s.SuccessProbability >= 80:
		verdict = "You are very likely to get there."
	case s.SuccessProbability >= 50:
		verdict = "You have a better than even chance, but a bad market stretch could set you back."
	default:
		verdict = "At this pace the goal is at risk; consider raising the monthly contribution or moving the date."
	}
	return fmt.Sprintf("Saving $%.2f a month toward %s reaches the $%.2f target in %.1f%% of %d simulated markets, with a median ending balance of $%.2f. %s",
		contribution, g.Name, g.TargetAmount, s.SuccessProbability, s.Count, s.Median, verdict)
}
