package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"spendtrack/internal/core"
	"spendtrack/internal/renderer"
)

type dashboardCmd struct {
	app   *App
	month string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show spending summary, breakdowns and budget insights" }
func (*dashboardCmd) Usage() string {
	return `spendtrack dashboard [-month <YYYY-MM>]

  Shows summary statistics, recent transactions, spending per category and
  per month, and the budget comparison and insights of the month.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month for the budget section (YYYY-MM), defaults to the current month")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := parsePeriodFlag(c.month, core.PeriodOf(c.app.now()))
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}
	c.app.printMarkdown(renderer.DashboardMarkdown(s.Tracker.Dashboard(period), c.app.currency()))
	return subcommands.ExitSuccess
}

type insightsCmd struct {
	app   *App
	month string
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "show budget insights for a month" }
func (*insightsCmd) Usage() string {
	return `spendtrack insights [-month <YYYY-MM>]
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to analyse (YYYY-MM), defaults to the current month")
}

func (c *insightsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := parsePeriodFlag(c.month, core.PeriodOf(c.app.now()))
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}
	c.app.printMarkdown(renderer.InsightsMarkdown(period, s.Tracker.Insights(period), c.app.currency()))
	return subcommands.ExitSuccess
}

type categoriesCmd struct {
	app *App
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list spending categories" }
func (*categoriesCmd) Usage() string {
	return `spendtrack categories
`
}

func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (c *categoriesCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	c.app.printMarkdown(renderer.CategoriesMarkdown())
	return subcommands.ExitSuccess
}
