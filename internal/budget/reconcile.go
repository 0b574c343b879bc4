// Package budget merges edited per-category budgets into the stored budget
// collection, one period at a time.
package budget

import (
	"spendtrack/internal/categories"
	"spendtrack/internal/core"
)

// SaveBudgets replaces every budget of period with entries and leaves other
// periods untouched. Entries are stamped with period; when an entry repeats a
// category the last one wins. Amounts are not re-validated here: callers drop
// non-positive amounts before saving (see EntriesFromAmounts).
func SaveBudgets(existing, entries []core.Budget, period core.Period) []core.Budget {
	out := make([]core.Budget, 0, len(existing)+len(entries))
	for _, b := range existing {
		if b.Month != period {
			out = append(out, b)
		}
	}

	index := make(map[string]int, len(entries))
	for _, e := range entries {
		e.Month = period
		if i, ok := index[e.CategoryID]; ok {
			out[i] = e
			continue
		}
		index[e.CategoryID] = len(out)
		out = append(out, e)
	}
	return out
}

// EntriesFromAmounts turns an edited category→amount form into budget entries
// for period. Non-positive amounts are dropped. Registered categories come
// first in registry order, then any other ids in the order of ids.
func EntriesFromAmounts(amounts map[string]core.Money, period core.Period, ids ...string) []core.Budget {
	var entries []core.Budget
	seen := make(map[string]bool, len(amounts))
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		if amount, ok := amounts[id]; ok && amount.IsPositive() {
			entries = append(entries, core.Budget{CategoryID: id, Amount: amount, Month: period})
		}
	}
	for _, c := range categories.All() {
		add(c.ID)
	}
	for _, id := range ids {
		add(id)
	}
	return entries
}

// ForPeriod returns the budgeted amount per category for period.
func ForPeriod(budgets []core.Budget, period core.Period) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, b := range budgets {
		if b.Month == period {
			out[b.CategoryID] = b.Amount
		}
	}
	return out
}
