package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
)

// PlanSchema names the JSON shape a plan response must follow.
const PlanSchema = "goal_plan"

// DecodeError reports a model response that does not match the expected schema.
type DecodeError struct {
	Schema string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Schema, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Schema, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var validate = validator.New()

// DecodeGoalPlan parses a plan response strictly: unknown fields, trailing data, missing
// required fields, unknown categories, a negative contribution and step counts outside
// 1..10 are all rejected. Markdown code fences around the JSON are tolerated.
func DecodeGoalPlan(raw []byte) (model.GoalPlan, error) {
	body := stripCodeFence(raw)
	if len(body) == 0 {
		return model.GoalPlan{}, &DecodeError{Schema: PlanSchema, Reason: "empty response"}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var plan model.GoalPlan
	if err := dec.Decode(&plan); err != nil {
		return model.GoalPlan{}, &DecodeError{Schema: PlanSchema, Reason: "malformed json", Err: err}
	}
	if dec.More() {
		return model.GoalPlan{}, &DecodeError{Schema: PlanSchema, Reason: "trailing data after json object"}
	}
	if math.IsNaN(plan.MonthlyContribution) || math.IsInf(plan.MonthlyContribution, 0) {
		return model.GoalPlan{}, &DecodeError{Schema: PlanSchema, Reason: "monthlyContribution must be finite"}
	}
	if err := validate.Struct(plan); err != nil {
		return model.GoalPlan{}, &DecodeError{Schema: PlanSchema, Reason: describeValidation(err), Err: err}
	}
	return plan, nil
}

func stripCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid plan"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func planPrompt(g model.FinancialGoal) string {
	return fmt.Sprintf(`Generate a feasible financial plan for the following goal. Provide a brief feasibility summary, a recommended monthly contribution, and 3 actionable steps across different categories (Savings, Budgeting, Investing, Income).

Goal: %s
Target Amount: $%.2f
Target Date: %s
Current Savings for this goal: $%.2f

Respond with a single JSON object with exactly these fields:
{"feasibilitySummary": string, "monthlyContribution": number, "steps": [{"title": string, "description": string, "category": "Savings" | "Budgeting" | "Investing" | "Income"}]}`,
		g.Name, g.TargetAmount, g.TargetDate.Format(model.DateLayout), g.CurrentAmount)
}

// GenerateGoalPlan asks the model for a plan for g. Transport failures are returned as-is;
// a response that does not match the plan schema is a *DecodeError.
func (c *Client) GenerateGoalPlan(ctx context.Context, g model.FinancialGoal) (model.GoalPlan, error) {
	content, err := c.complete(ctx, planPrompt(g), true, 600)
	if err != nil {
		return model.GoalPlan{}, err
	}
	plan, err := DecodeGoalPlan([]byte(content))
	if err != nil {
		c.logger.WarnContext(ctx, "plan response rejected",
			applog.NewFields().WithOperation(applog.OpPlan).WithGoal(g.ID).WithError(err).ToSlice()...,
		)
		return model.GoalPlan{}, err
	}
	return plan, nil
}

// PlanOrFallback returns a model plan when the client is enabled and the call succeeds at the
// transport level, and FallbackPlan when the client is disabled or unreachable. Schema errors
// are still returned so callers can surface them.
func (c *Client) PlanOrFallback(ctx context.Context, g model.FinancialGoal) (model.GoalPlan, bool, error) {
	if !c.Enabled() {
		return FallbackPlan(g, c.clock()), true, nil
	}
	plan, err := c.GenerateGoalPlan(ctx, g)
	var decErr *DecodeError
	switch {
	case err == nil:
		return plan, false, nil
	case errors.As(err, &decErr):
		return model.GoalPlan{}, false, err
	default:
		c.logger.WarnContext(ctx, "plan request failed, using fallback",
			applog.NewFields().WithOperation(applog.OpPlan).WithGoal(g.ID).WithError(err).ToSlice()...,
		)
		return FallbackPlan(g, c.clock()), true, nil
	}
}

func (c *Client) clock() time.Time {
	if c == nil || c.now == nil {
		return time.Now()
	}
	return c.now()
}

// FallbackPlan is a plan derived purely from the numbers: save the straight-line amount
// needed to reach the target on time.
func FallbackPlan(g model.FinancialGoal, now time.Time) model.GoalPlan {
	required := math.Max(0, g.RequiredMonthlySaving(now))
	required = math.Ceil(required*100) / 100
	months := g.MonthsRemaining(now)

	var summary string
	switch {
	case g.CurrentAmount >= g.TargetAmount:
		summary = fmt.Sprintf("You have already reached the %s target.", g.Name)
	case months < 1:
		summary = fmt.Sprintf("The target date for %s has arrived; closing the remaining $%.2f needs a single deposit.", g.Name, g.TargetAmount-g.CurrentAmount)
	default:
		summary = fmt.Sprintf("Saving $%.2f a month for %d months closes the remaining $%.2f gap for %s.", required, months, g.TargetAmount-g.CurrentAmount, g.Name)
	}

	return model.GoalPlan{
		FeasibilitySummary:  summary,
		MonthlyContribution: required,
		Steps: []model.PlanStep{
			{
				Title:       "Automate Savings",
				Description: fmt.Sprintf("Schedule an automatic transfer of $%.2f each month toward %s.", required, g.Name),
				Category:    model.CategorySavings,
			},
			{
				Title:       "Review Recurring Costs",
				Description: "Go through subscriptions and recurring bills and redirect anything you cancel to this goal.",
				Category:    model.CategoryBudgeting,
			},
		},
	}
}
