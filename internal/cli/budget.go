package cli

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"

	"spendtrack/internal/core"
	"spendtrack/internal/renderer"
	"spendtrack/internal/store"
)

// budgetCmd holds the flags for the 'budget' subcommand.
type budgetCmd struct {
	app   *App
	month string
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set or show monthly budgets" }
func (*budgetCmd) Usage() string {
	return `spendtrack budget [-month <YYYY-MM>] [<category>=<amount>...]

  Without arguments, shows budget versus actual spending for the month.
  With arguments, replaces the month's budgets with the given amounts and
  then shows the result. An amount of 0 removes a category's budget.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to budget (YYYY-MM), defaults to the current month")
}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := parsePeriodFlag(c.month, core.PeriodOf(c.app.now()))
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	amounts, err := parseBudgetAssignments(f.Args())
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
	}

	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}

	status := subcommands.ExitSuccess
	if len(amounts) > 0 {
		err := s.Tracker.SaveBudgetsFor(ctx, period, amounts)
		switch {
		case errors.Is(err, store.ErrPersist):
			status = c.app.failf(subcommands.ExitFailure, "Warning: budgets changed but not saved: %v", err)
		case err != nil:
			return c.app.failf(subcommands.ExitFailure, "Error: %v", err)
		}
	}

	c.app.printMarkdown(renderer.BudgetMarkdown(period, s.Tracker.BudgetComparison(period), c.app.currency()))
	return status
}
