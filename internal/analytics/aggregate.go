// Package analytics derives the dashboard views from raw transactions and
// budgets. Every function is pure: it reads its inputs, never retains them,
// and recomputes its result from scratch.
package analytics

import (
	"cmp"
	"slices"

	"spendtrack/internal/categories"
	"spendtrack/internal/core"
)

// RecentLimit is the number of transactions listed in Summary.RecentTransactions.
const RecentLimit = 4

// SumByCategory totals amounts per category id. Transactions without a
// category count under the fallback id. When period is non-nil only
// transactions dated inside it contribute.
func SumByCategory(txs []core.Transaction, period *core.Period) map[string]core.Money {
	sums := make(map[string]core.Money)
	for _, tx := range txs {
		if period != nil && !period.Contains(tx.Date) {
			continue
		}
		id := tx.CategoryID()
		sums[id] = sums[id].Add(tx.Amount)
	}
	return sums
}

// GroupByCategory returns one slice per category present, largest first.
// Equal amounts are ordered by category id.
func GroupByCategory(txs []core.Transaction) []core.CategorySlice {
	sums := SumByCategory(txs, nil)
	total := Total(txs)

	out := make([]core.CategorySlice, 0, len(sums))
	for id, amount := range sums {
		s := core.CategorySlice{CategoryAmount: core.CategoryAmount{Category: resolve(id), Amount: amount}}
		if total.IsPositive() {
			s.Share = amount.Ratio(total)
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b core.CategorySlice) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.ID, b.Category.ID)
	})
	return out
}

// GroupByMonth totals amounts per calendar month, in ascending calendar order.
func GroupByMonth(txs []core.Transaction) []core.MonthlyTotal {
	sums := make(map[core.Period]core.Money)
	for _, tx := range txs {
		p := tx.Date.Period()
		sums[p] = sums[p].Add(tx.Amount)
	}

	out := make([]core.MonthlyTotal, 0, len(sums))
	for p, amount := range sums {
		out = append(out, core.MonthlyTotal{Period: p, Label: p.Label(), Amount: amount})
	}
	slices.SortFunc(out, func(a, b core.MonthlyTotal) int {
		return a.Period.Compare(b.Period)
	})
	return out
}

// Total sums every amount.
func Total(txs []core.Transaction) core.Money {
	var total core.Money
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// SummaryStats computes the dashboard statistics. On empty input every amount
// is zero and the top category is the fallback with a zero amount.
func SummaryStats(txs []core.Transaction) core.Summary {
	summary := core.Summary{
		TopCategory:        core.CategoryAmount{Category: categories.Fallback()},
		RecentTransactions: []core.Transaction{},
	}
	if len(txs) == 0 {
		return summary
	}

	// Category totals keep first-encounter order so that on equal totals the
	// category seen first stays on top.
	var order []string
	sums := make(map[string]core.Money)
	largest := txs[0].Amount
	for _, tx := range txs {
		summary.TotalSpent = summary.TotalSpent.Add(tx.Amount)
		largest = largest.Max(tx.Amount)

		id := tx.CategoryID()
		if _, seen := sums[id]; !seen {
			order = append(order, id)
		}
		sums[id] = sums[id].Add(tx.Amount)
	}

	topID := core.FallbackCategoryID
	var topAmount core.Money
	for _, id := range order {
		if sums[id].GreaterThan(topAmount) {
			topID, topAmount = id, sums[id]
		}
	}

	summary.Count = len(txs)
	summary.AverageTransaction = summary.TotalSpent.DivInt(len(txs))
	summary.LargestTransaction = largest
	summary.TopCategory = core.CategoryAmount{Category: resolve(topID), Amount: topAmount}
	summary.RecentTransactions = MostRecent(txs, RecentLimit)
	return summary
}

// SortByDateDesc returns a copy of txs ordered newest date first. Transactions
// sharing a date keep their relative order.
func SortByDateDesc(txs []core.Transaction) []core.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

// MostRecent returns at most n transactions, newest date first.
func MostRecent(txs []core.Transaction, n int) []core.Transaction {
	sorted := SortByDateDesc(txs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return slices.Clip(sorted)
}

// resolve keeps the raw id of unregistered categories so that distinct unknown
// ids are not merged into one displayed category.
func resolve(id string) core.Category {
	c := categories.Resolve(id)
	if c.ID != id {
		c.ID = id
	}
	return c
}
