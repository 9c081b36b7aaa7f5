package model

import "math"

// Transaction types. Contributions to goals are recorded as expenses.
const (
	TransactionExpense = "expense"
	TransactionIncome  = "income"
)

// Points awarded per recorded transaction.
const (
	PointsExpense = 10
	PointsIncome  = 20
)

// BudgetCategory tracks spending against a monthly limit. Expenses whose category matches
// Name (case-insensitively) accrue to Spent.
type BudgetCategory struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Limit float64 `json:"limit" yaml:"limit"`
	Spent float64 `json:"spent" yaml:"spent"`
}

// Remaining is Limit - Spent; negative once the budget is overspent.
func (b BudgetCategory) Remaining() float64 {
	return b.Limit - b.Spent
}

const ScorePerLevel = 200

// LevelNames are indexed by level-1; levels past the end keep the last name.
var LevelNames = []string{
	"Financial Novice",
	"Budgeting Apprentice",
	"Savings Specialist",
	"Investment Adept",
	"Wealth Master",
}

// Gamification is the engagement score. Level, LevelName and Progress are derived
// from Score; Credits accumulate half of every positive award.
type Gamification struct {
	Score     int     `json:"score"`
	Level     int     `json:"level"`
	LevelName string  `json:"level_name"`
	Progress  float64 `json:"progress"` // percent of the way to the next level
	Credits   int     `json:"credits"`
}

// GamificationForScore derives the level fields for score.
func GamificationForScore(score, credits int) Gamification {
	level := score/ScorePerLevel + 1
	return Gamification{
		Score:     score,
		Level:     level,
		LevelName: LevelNames[min(max(level-1, 0), len(LevelNames)-1)],
		Progress:  float64(score%ScorePerLevel) / ScorePerLevel * 100,
		Credits:   credits,
	}
}

// Award returns g with points added and the level fields recomputed.
func (g Gamification) Award(points int) Gamification {
	credits := g.Credits
	if points > 0 {
		credits += points / 2
	}
	return GamificationForScore(g.Score+points, credits)
}

// CostPerTree is the expense total that plants one tree.
const CostPerTree = 250.0

// Impact counts trees planted from cumulative spending.
type Impact struct {
	TreesPlanted        int     `json:"trees_planted"`
	SpendingForNextTree float64 `json:"spending_for_next_tree"`
}

// AddSpending plants a tree for every CostPerTree accumulated and carries the remainder.
func (im Impact) AddSpending(amount float64) Impact {
	total := im.SpendingForNextTree + amount
	if total >= CostPerTree {
		im.TreesPlanted += int(total / CostPerTree)
		total = math.Mod(total, CostPerTree)
	}
	im.SpendingForNextTree = math.Round(total*100) / 100
	return im
}

// ProgressToNextTree is the share of CostPerTree already spent, in percent.
func (im Impact) ProgressToNextTree() float64 {
	return im.SpendingForNextTree / CostPerTree * 100
}
