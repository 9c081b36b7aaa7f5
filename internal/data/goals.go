package data

import (
	"time"

	"goal-forecast/internal/model"
)

// MockGoals returns the goals a fresh process starts with.
func MockGoals() []model.FinancialGoal {
	return []model.FinancialGoal{
		{
			ID:            "goal_house_1",
			Name:          "Down Payment for a Condo",
			TargetAmount:  75000,
			TargetDate:    date(2029, time.December, 31),
			CurrentAmount: 12500,
			IconName:      "home",
			RiskProfile:   model.RiskModerate,
		},
		{
			ID:            "goal_trip_1",
			Name:          "Trip to Neo-Tokyo",
			TargetAmount:  15000,
			TargetDate:    date(2026, time.June, 1),
			CurrentAmount: 8000,
			IconName:      "plane",
			RiskProfile:   model.RiskConservative,
			Plan: &model.GoalPlan{
				FeasibilitySummary:  "Highly achievable! You are already on a great track to reach this goal ahead of schedule.",
				MonthlyContribution: 450,
				Steps: []model.PlanStep{
					{
						Title:       "Automate Savings",
						Description: "Set up an automatic monthly transfer of $450 to your 'Trip to Neo-Tokyo' savings goal.",
						Category:    model.CategorySavings,
					},
					{
						Title:       "Review Subscriptions",
						Description: "Analyze your recurring subscriptions. Cancelling one or two could accelerate your goal.",
						Category:    model.CategoryBudgeting,
					},
					{
						Title:       "Explore Travel ETFs",
						Description: "Consider investing a small portion of your savings in a travel and tourism focused ETF for potential growth.",
						Category:    model.CategoryInvesting,
					},
				},
			},
		},
	}
}

// MockBudgets returns the starting budget categories. Savings collects goal contributions.
func MockBudgets() []model.BudgetCategory {
	return []model.BudgetCategory{
		{ID: "dining", Name: "Dining", Limit: 400, Spent: 280},
		{ID: "shopping", Name: "Shopping", Limit: 600, Spent: 410.50},
		{ID: "transport", Name: "Transport", Limit: 200, Spent: 95.20},
		{ID: "utilities", Name: "Utilities", Limit: 250, Spent: 185.70},
		{ID: "savings", Name: "Savings", Limit: 1000, Spent: 0},
	}
}

// MockGamification is the score a fresh process starts with (level 3, a quarter of the way to 4).
func MockGamification() model.Gamification {
	return model.GamificationForScore(450, 225)
}

func MockImpact() model.Impact {
	return model.Impact{TreesPlanted: 12, SpendingForNextTree: 170}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
