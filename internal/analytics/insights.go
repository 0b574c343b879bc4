package analytics

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"spendtrack/internal/categories"
	"spendtrack/internal/core"
)

// InsightKind is the severity tag of an insight. It only drives presentation.
type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
)

// Insight is an observation about budget performance. Category and Amount
// describe the most notable row: the overage for warnings, the remaining
// budget for successes, and the spending for unbudgeted categories.
type Insight struct {
	Kind     InsightKind
	Count    int
	Category core.Category
	Amount   core.Money
}

var underBudgetRatio = decimal.NewFromFloat(0.5)

// BudgetComparison returns one row per registered category, in registry
// order, for the given period. Rows with neither a budget nor spending are
// left out.
func BudgetComparison(txs []core.Transaction, budgets []core.Budget, period core.Period) []core.ComparisonRow {
	spent := SumByCategory(txs, &period)

	rows := make([]core.ComparisonRow, 0)
	for _, c := range categories.All() {
		row := core.ComparisonRow{
			Category: c,
			Budgeted: budgetFor(budgets, c.ID, period),
			Spent:    spent[c.ID],
		}
		if row.Budgeted.IsPositive() || row.Spent.IsPositive() {
			rows = append(rows, row)
		}
	}
	return rows
}

func budgetFor(budgets []core.Budget, categoryID string, period core.Period) core.Money {
	for _, b := range budgets {
		if b.CategoryID == categoryID && b.Month == period {
			return b.Amount
		}
	}
	return core.Money{}
}

// DeriveInsights returns at most three insights, always in the order
// over-budget, under-budget, unbudgeted.
func DeriveInsights(rows []core.ComparisonRow) []Insight {
	insights := make([]Insight, 0, 3)

	over := filterSorted(rows,
		func(r core.ComparisonRow) bool { return r.Budgeted.IsPositive() && r.Spent.GreaterThan(r.Budgeted) },
		func(r core.ComparisonRow) core.Money { return r.Spent.Sub(r.Budgeted) })
	if len(over) > 0 {
		insights = append(insights, Insight{
			Kind:     InsightWarning,
			Count:    len(over),
			Category: over[0].Category,
			Amount:   over[0].Spent.Sub(over[0].Budgeted),
		})
	}

	under := filterSorted(rows,
		func(r core.ComparisonRow) bool {
			return r.Budgeted.IsPositive() && r.Spent.LessThanOrEqual(r.Budgeted.Mul(underBudgetRatio))
		},
		func(r core.ComparisonRow) core.Money { return r.Budgeted.Sub(r.Spent) })
	if len(under) > 0 {
		insights = append(insights, Insight{
			Kind:     InsightSuccess,
			Count:    len(under),
			Category: under[0].Category,
			Amount:   under[0].Budgeted.Sub(under[0].Spent),
		})
	}

	unbudgeted := filterSorted(rows,
		func(r core.ComparisonRow) bool { return r.Budgeted.IsZero() && r.Spent.IsPositive() },
		func(r core.ComparisonRow) core.Money { return r.Spent })
	if len(unbudgeted) > 0 {
		insights = append(insights, Insight{
			Kind:     InsightInfo,
			Count:    len(unbudgeted),
			Category: unbudgeted[0].Category,
			Amount:   unbudgeted[0].Spent,
		})
	}

	return insights
}

// filterSorted keeps the rows matching keep, ordered by descending key.
// Rows with equal keys keep their input order.
func filterSorted(rows []core.ComparisonRow, keep func(core.ComparisonRow) bool, key func(core.ComparisonRow) core.Money) []core.ComparisonRow {
	var out []core.ComparisonRow
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b core.ComparisonRow) int {
		return key(b).Cmp(key(a))
	})
	return out
}

// Message is the headline of the insight.
func (i Insight) Message() string {
	noun := "categories"
	if i.Count == 1 {
		noun = "category"
	}
	switch i.Kind {
	case InsightWarning:
		return fmt.Sprintf("You're over budget in %d %s.", i.Count, noun)
	case InsightSuccess:
		return fmt.Sprintf("You're well under budget in %d %s.", i.Count, noun)
	default:
		return fmt.Sprintf("You have %d %s with spending but no budget.", i.Count, noun)
	}
}

// Detail names the most notable category, formatting the amount in currency.
func (i Insight) Detail(currency string) string {
	amount := i.Amount.Format(currency)
	switch i.Kind {
	case InsightWarning:
		return fmt.Sprintf("Most notably in %s by %s.", i.Category.Name, amount)
	case InsightSuccess:
		return fmt.Sprintf("Most notably in %s with %s remaining.", i.Category.Name, amount)
	default:
		return fmt.Sprintf("Consider setting a budget for %s (%s).", i.Category.Name, amount)
	}
}
