package cli

import (
	"context"
	"errors"
	"flag"
	"strings"

	"github.com/google/subcommands"

	"spendtrack/internal/analytics"
	"spendtrack/internal/core"
	"spendtrack/internal/renderer"
	"spendtrack/internal/services"
	"spendtrack/internal/store"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	app         *App
	amount      string
	description string
	date        string
	category    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `spendtrack add -a <amount> -m <description> [-d <YYYY-MM-DD>] [-c <category>]

  Records a spending transaction. The date defaults to today and the
  category to "other".
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "amount spent, e.g. 12.50 or 12,50")
	f.StringVar(&c.description, "m", "", "description (3 to 200 characters)")
	f.StringVar(&c.date, "d", "", "date of the transaction (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.category, "c", "", "category id, see 'spendtrack categories'")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.input()
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
	}

	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}

	tx, err := s.Tracker.AddTransaction(ctx, in)
	switch {
	case errors.Is(err, store.ErrPersist):
		c.app.failf(subcommands.ExitFailure, "Warning: transaction recorded but not saved: %v", err)
	case err != nil:
		return c.app.failf(subcommands.ExitFailure, "Error: %v", err)
	}

	c.app.printMarkdown(renderer.TransactionMarkdown("Transaction added", tx, c.app.currency()))
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *addCmd) input() (services.TransactionInput, error) {
	amount, err := core.ParseMoney(c.amount)
	if err != nil {
		return services.TransactionInput{}, err
	}
	date := core.DateOf(c.app.now())
	if c.date != "" {
		if date, err = core.ParseDate(c.date); err != nil {
			return services.TransactionInput{}, err
		}
	}
	return services.TransactionInput{
		Amount:      amount,
		Description: c.description,
		Date:        date,
		Category:    c.category,
	}, nil
}

// editCmd holds the flags for the 'edit' subcommand. Unset flags keep the
// current value.
type editCmd struct {
	app         *App
	amount      string
	description string
	date        string
	category    string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an existing transaction" }
func (*editCmd) Usage() string {
	return `spendtrack edit [-a <amount>] [-m <description>] [-d <date>] [-c <category>] <id>

  Updates the given fields of a transaction. Its id and creation time are kept.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "new amount")
	f.StringVar(&c.description, "m", "", "new description")
	f.StringVar(&c.date, "d", "", "new date (YYYY-MM-DD)")
	f.StringVar(&c.category, "c", "", "new category id")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.failf(subcommands.ExitUsageError, "Error: edit takes exactly one transaction id")
	}
	id := f.Arg(0)

	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}
	current, ok := s.Tracker.Transaction(id)
	if !ok {
		return c.app.failf(subcommands.ExitFailure, "Transaction %s not found", id)
	}

	in := services.TransactionInput{
		Amount:      current.Amount,
		Description: current.Description,
		Date:        current.Date,
		Category:    current.Category,
	}
	if c.amount != "" {
		if in.Amount, err = core.ParseMoney(c.amount); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
		}
	}
	if c.description != "" {
		in.Description = c.description
	}
	if c.date != "" {
		if in.Date, err = core.ParseDate(c.date); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
		}
	}
	if c.category != "" {
		in.Category = c.category
	}

	tx, changed, err := s.Tracker.UpdateTransaction(ctx, id, in)
	switch {
	case !changed && err == nil:
		return c.app.failf(subcommands.ExitFailure, "Transaction %s not found", id)
	case !changed:
		return c.app.failf(subcommands.ExitFailure, "Error: %v", err)
	case err != nil:
		c.app.failf(subcommands.ExitFailure, "Warning: transaction updated but not saved: %v", err)
	}
	c.app.printMarkdown(renderer.TransactionMarkdown("Transaction updated", tx, c.app.currency()))
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type rmCmd struct {
	app *App
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `spendtrack rm <id>...

  Deletes the given transactions. Unknown ids are reported and skipped.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return c.app.failf(subcommands.ExitUsageError, "Error: rm needs at least one transaction id")
	}
	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}

	status := subcommands.ExitSuccess
	var removed []string
	for _, id := range f.Args() {
		changed, err := s.Tracker.DeleteTransaction(ctx, id)
		switch {
		case err != nil && !changed:
			return c.app.failf(subcommands.ExitFailure, "Error: %v", err)
		case err != nil:
			status = c.app.failf(subcommands.ExitFailure, "Warning: %s deleted but not saved: %v", id, err)
			removed = append(removed, id)
		case !changed:
			status = c.app.failf(subcommands.ExitFailure, "Transaction %s not found", id)
		default:
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		c.app.printMarkdown("Deleted " + strings.Join(removed, ", ") + ".\n")
	}
	return status
}

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	app      *App
	month    string
	category string
	limit    int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions, newest first" }
func (*listCmd) Usage() string {
	return `spendtrack list [-month <YYYY-MM>] [-c <category>] [-n <limit>]

  Lists transactions sorted by date, newest first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "only show this month (YYYY-MM)")
	f.StringVar(&c.category, "c", "", "only show this category id")
	f.IntVar(&c.limit, "n", 0, "show at most n transactions (0 = all)")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period *core.Period
	if c.month != "" {
		p, err := core.ParsePeriod(c.month)
		if err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Error: %v", err)
		}
		period = &p
	}

	s, err := c.app.Session(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening storage: %v", err)
	}

	txs := filterTransactions(s.Tracker.Transactions(), period, c.category)
	txs = analytics.SortByDateDesc(txs)
	if c.limit > 0 && len(txs) > c.limit {
		txs = txs[:c.limit]
	}
	c.app.printMarkdown(renderer.TransactionsMarkdown("Transactions", txs, c.app.currency()))
	return subcommands.ExitSuccess
}

func filterTransactions(txs []core.Transaction, period *core.Period, category string) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if period != nil && !period.Contains(tx.Date) {
			continue
		}
		if category != "" && tx.CategoryID() != category {
			continue
		}
		out = append(out, tx)
	}
	return out
}
