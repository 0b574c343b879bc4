package budget

import (
	"testing"
	"time"

	"spendtrack/internal/core"
)

var (
	may  = core.Period{Year: 2024, Month: time.May}
	june = core.Period{Year: 2024, Month: time.June}
)

func TestSaveBudgetsReplacesOnlyThePeriod(t *testing.T) {
	existing := []core.Budget{
		{CategoryID: "groceries", Amount: core.M(300), Month: may},
		{CategoryID: "groceries", Amount: core.M(250), Month: june},
		{CategoryID: "bills", Amount: core.M(90), Month: june},
		{CategoryID: "travel", Amount: core.M(1000), Month: may},
	}
	entries := []core.Budget{
		{CategoryID: "groceries", Amount: core.M(280), Month: june},
		{CategoryID: "dining", Amount: core.M(60), Month: june},
	}

	got := SaveBudgets(existing, entries, june)

	perPeriod := map[core.Period]map[string]int{}
	for _, b := range got {
		if perPeriod[b.Month] == nil {
			perPeriod[b.Month] = map[string]int{}
		}
		perPeriod[b.Month][b.CategoryID]++
	}
	if len(perPeriod[june]) != 2 || perPeriod[june]["groceries"] != 1 || perPeriod[june]["dining"] != 1 {
		t.Fatalf("unexpected June budgets: %v", perPeriod[june])
	}
	if _, ok := perPeriod[june]["bills"]; ok {
		t.Fatalf("pre-existing June entries must not survive")
	}
	if len(perPeriod[may]) != 2 {
		t.Fatalf("May budgets must be untouched: %v", perPeriod[may])
	}
	if amounts := ForPeriod(got, june); !amounts["groceries"].Equal(core.M(280)) {
		t.Fatalf("expected new groceries amount, got %s", amounts["groceries"])
	}
	if amounts := ForPeriod(got, may); !amounts["travel"].Equal(core.M(1000)) {
		t.Fatalf("expected May travel untouched, got %s", amounts["travel"])
	}
}

func TestSaveBudgetsDeduplicatesEntries(t *testing.T) {
	got := SaveBudgets(nil, []core.Budget{
		{CategoryID: "bills", Amount: core.M(10)},
		{CategoryID: "bills", Amount: core.M(20)},
	}, june)
	if len(got) != 1 || !got[0].Amount.Equal(core.M(20)) || got[0].Month != june {
		t.Fatalf("expected single stamped bills entry of 20, got %+v", got)
	}
}

func TestSaveBudgetsWithNoEntriesClearsPeriod(t *testing.T) {
	got := SaveBudgets([]core.Budget{{CategoryID: "bills", Amount: core.M(10), Month: june}}, nil, june)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestEntriesFromAmountsDropsNonPositive(t *testing.T) {
	entries := EntriesFromAmounts(map[string]core.Money{
		"travel":    core.M(100),
		"groceries": core.M(50),
		"bills":     {},
		"custom":    core.M(5),
	}, june, "custom")

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", entries)
	}
	want := []string{"groceries", "travel", "custom"}
	for i, id := range want {
		if entries[i].CategoryID != id || entries[i].Month != june {
			t.Errorf("entry %d: got %+v, want %s", i, entries[i], id)
		}
	}
}
