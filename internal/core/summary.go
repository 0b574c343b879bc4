package core

import "math"

// CategoryAmount represents an amount aggregated under one category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// CategorySlice is one slice of the spending-by-category breakdown.
type CategorySlice struct {
	CategoryAmount
	Share float64 // fraction of the total, 0..1
}

// MonthlyTotal is the spending of one calendar month.
type MonthlyTotal struct {
	Period Period
	Label  string
	Amount Money
}

// Summary holds the dashboard statistics over a transaction list.
type Summary struct {
	Count              int
	TotalSpent         Money
	AverageTransaction Money
	LargestTransaction Money
	TopCategory        CategoryAmount
	RecentTransactions []Transaction
}

// BudgetLevel classifies how much of a budget has been used.
type BudgetLevel string

const (
	LevelOK       BudgetLevel = "ok"
	LevelCaution  BudgetLevel = "caution"
	LevelCritical BudgetLevel = "critical"
)

// ComparisonRow is the budget-versus-actual line of one category for a period.
type ComparisonRow struct {
	Category Category
	Budgeted Money
	Spent    Money
}

// Remaining is negative when the category is over budget.
func (r ComparisonRow) Remaining() Money { return r.Budgeted.Sub(r.Spent) }

func (r ComparisonRow) OverBudget() bool {
	return r.Budgeted.IsPositive() && r.Spent.GreaterThan(r.Budgeted)
}

// PercentUsed is the rounded share of the budget spent, capped at 100.
// It is 0 when there is no budget.
func (r ComparisonRow) PercentUsed() int {
	if !r.Budgeted.IsPositive() {
		return 0
	}
	pct := int(math.Round(r.Spent.Ratio(r.Budgeted) * 100))
	return min(pct, 100)
}

func (r ComparisonRow) Level() BudgetLevel {
	switch pct := r.PercentUsed(); {
	case pct > 90:
		return LevelCritical
	case pct > 70:
		return LevelCaution
	default:
		return LevelOK
	}
}
