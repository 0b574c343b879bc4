package cli

import (
	"fmt"
	"strings"

	"spendtrack/internal/core"
)

// parseBudgetAssignments reads "category=amount" arguments. A later
// assignment for the same category wins; zero clears the budget.
func parseBudgetAssignments(args []string) (map[string]core.Money, error) {
	out := make(map[string]core.Money, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid budget %q: expected category=amount", arg)
		}
		amount, err := core.ParseBudgetAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid budget %q: %w", arg, err)
		}
		out[id] = amount
	}
	return out, nil
}

// parsePeriodFlag returns the current period of now when s is empty.
func parsePeriodFlag(s string, now core.Period) (core.Period, error) {
	if strings.TrimSpace(s) == "" {
		return now, nil
	}
	return core.ParsePeriod(s)
}
