package analytics

import (
	"testing"

	"spendtrack/internal/categories"
	"spendtrack/internal/core"
)

func TestBudgetComparisonOverBudgetScenario(t *testing.T) {
	june := period("2024-06")
	txs := []core.Transaction{
		tx("1", 50, "groceries", "2024-06-01"),
		tx("2", 150, "groceries", "2024-06-15"),
	}
	budgets := []core.Budget{{CategoryID: "groceries", Amount: core.M(100), Month: june}}

	rows := BudgetComparison(txs, budgets, june)
	if len(rows) != 1 {
		t.Fatalf("expected a single row, got %d", len(rows))
	}
	if rows[0].Category.ID != "groceries" || !rows[0].Budgeted.Equal(core.M(100)) || !rows[0].Spent.Equal(core.M(200)) {
		t.Fatalf("unexpected row %+v", rows[0])
	}

	insights := DeriveInsights(rows)
	if len(insights) != 1 {
		t.Fatalf("expected one insight, got %d", len(insights))
	}
	in := insights[0]
	if in.Kind != InsightWarning || in.Count != 1 || !in.Amount.Equal(core.M(100)) {
		t.Fatalf("unexpected insight %+v", in)
	}
	if in.Message() != "You're over budget in 1 category." {
		t.Fatalf("unexpected message %q", in.Message())
	}
	if in.Detail("USD") != "Most notably in Groceries by $100.00." {
		t.Fatalf("unexpected detail %q", in.Detail("USD"))
	}
}

func TestBudgetComparisonFiltersAndOrders(t *testing.T) {
	june := period("2024-06")
	may := period("2024-05")
	budgets := []core.Budget{
		{CategoryID: "bills", Amount: core.M(80), Month: june},
		{CategoryID: "travel", Amount: core.M(500), Month: may},
		{CategoryID: "health", Amount: core.Money{}, Month: june},
	}
	txs := []core.Transaction{
		tx("1", 30, "dining", "2024-06-02"),
		tx("2", 99, "travel", "2024-05-02"),
	}

	rows := BudgetComparison(txs, budgets, june)
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Category.ID)
	}
	// registry order: dining comes before bills
	if len(ids) != 2 || ids[0] != "dining" || ids[1] != "bills" {
		t.Fatalf("unexpected rows %v", ids)
	}
}

func TestBudgetComparisonEmpty(t *testing.T) {
	rows := BudgetComparison(nil, nil, period("2024-06"))
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if got := DeriveInsights(rows); len(got) != 0 {
		t.Fatalf("expected no insights, got %v", got)
	}
}

func row(id string, budget, spent float64) core.ComparisonRow {
	return core.ComparisonRow{Category: categories.Resolve(id), Budgeted: core.M(budget), Spent: core.M(spent)}
}

func TestDeriveInsightsAllKindsInFixedOrder(t *testing.T) {
	rows := []core.ComparisonRow{
		row("dining", 0, 40),       // unbudgeted
		row("groceries", 100, 130), // over by 30
		row("bills", 200, 20),      // under, 180 remaining
		row("travel", 50, 120),     // over by 70
		row("health", 100, 50),     // under, exactly half, 50 remaining
		row("education", 0, 75),    // unbudgeted
		row("housing", 100, 60),    // neither
	}

	got := DeriveInsights(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(got))
	}

	checks := []struct {
		kind   InsightKind
		count  int
		id     string
		amount float64
	}{
		{InsightWarning, 2, "travel", 70},
		{InsightSuccess, 2, "bills", 180},
		{InsightInfo, 2, "education", 75},
	}
	for i, c := range checks {
		in := got[i]
		if in.Kind != c.kind || in.Count != c.count || in.Category.ID != c.id || !in.Amount.Equal(core.M(c.amount)) {
			t.Errorf("insight %d: got %+v, want %+v", i, in, c)
		}
	}
	if got[1].Message() != "You're well under budget in 2 categories." {
		t.Errorf("unexpected message %q", got[1].Message())
	}
	if got[2].Detail("USD") != "Consider setting a budget for Education ($75.00)." {
		t.Errorf("unexpected detail %q", got[2].Detail("USD"))
	}
}

func TestDeriveInsightsTiesKeepRowOrder(t *testing.T) {
	got := DeriveInsights([]core.ComparisonRow{
		row("dining", 10, 20),
		row("travel", 10, 20),
	})
	if len(got) != 1 || got[0].Category.ID != "dining" {
		t.Fatalf("expected dining to be cited, got %+v", got)
	}
}
