// Package renderer turns tracker views into markdown reports. Terminal
// styling is left to the caller.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"spendtrack/internal/analytics"
	"spendtrack/internal/categories"
	"spendtrack/internal/core"
	"spendtrack/internal/services"
)

// cell escapes user text so it cannot break a table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

func categoryName(tx core.Transaction) string {
	return categories.Resolve(tx.CategoryID()).Name
}

func transactionRows(txs []core.Transaction, currency string, withID bool) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		row := []string{tx.Date.String(), cell(tx.Description), categoryName(tx), tx.Amount.Format(currency)}
		if withID {
			row = append([]string{tx.ID}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

// TransactionsMarkdown lists txs in the given order with a count and total.
func TransactionsMarkdown(title string, txs []core.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(txs) == 0 {
		doc.PlainText("No transactions yet.")
		doc.Build()
		return buf.String()
	}

	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Description", "Category", "Amount"},
		Rows:   transactionRows(txs, currency, true),
	})
	doc.PlainText(fmt.Sprintf("%d transactions, %s in total.", len(txs), analytics.Total(txs).Format(currency)))
	doc.Build()
	return buf.String()
}

// TransactionMarkdown shows a single transaction.
func TransactionMarkdown(title string, tx core.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(title)
	doc.Table(md.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"ID", tx.ID},
			{"Amount", tx.Amount.Format(currency)},
			{"Description", cell(tx.Description)},
			{"Date", tx.Date.String()},
			{"Category", categoryName(tx)},
			{"Created", tx.CreatedAt.Format("2006-01-02 15:04")},
		},
	})
	doc.Build()
	return buf.String()
}

// CategoriesMarkdown lists the category registry.
func CategoriesMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Categories")
	var rows [][]string
	for _, c := range categories.All() {
		rows = append(rows, []string{c.ID, c.Name, c.Color})
	}
	doc.Table(md.TableSet{Header: []string{"ID", "Name", "Colour"}, Rows: rows})
	doc.Build()
	return buf.String()
}

func budgetStatus(r core.ComparisonRow) string {
	switch {
	case !r.Budgeted.IsPositive():
		return "no budget"
	case r.OverBudget():
		return md.Bold("over budget")
	default:
		return string(r.Level())
	}
}

func comparisonTable(doc *md.Markdown, rows []core.ComparisonRow, currency string) {
	if len(rows) == 0 {
		doc.PlainText("No budgets or spending for this month.")
		return
	}
	var out [][]string
	for _, r := range rows {
		out = append(out, []string{
			r.Category.Name,
			r.Budgeted.Format(currency),
			r.Spent.Format(currency),
			r.Remaining().Format(currency),
			fmt.Sprintf("%d%%", r.PercentUsed()),
			budgetStatus(r),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Budget", "Spent", "Remaining", "Used", "Status"},
		Rows:   out,
	})
}

// BudgetMarkdown shows the budget-versus-actual rows of period.
func BudgetMarkdown(period core.Period, rows []core.ComparisonRow, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Budget for " + period.Label())
	comparisonTable(doc, rows, currency)
	doc.Build()
	return buf.String()
}

func insightList(doc *md.Markdown, insights []analytics.Insight, currency string) {
	if len(insights) == 0 {
		doc.PlainText("Nothing to report. Set budgets to get insights on your spending.")
		return
	}
	items := make([]string, 0, len(insights))
	for _, in := range insights {
		items = append(items, fmt.Sprintf("%s %s %s", insightTag(in.Kind), md.Bold(in.Message()), in.Detail(currency)))
	}
	doc.BulletList(items...)
}

func insightTag(kind analytics.InsightKind) string {
	switch kind {
	case analytics.InsightWarning:
		return "[!]"
	case analytics.InsightSuccess:
		return "[ok]"
	default:
		return "[i]"
	}
}

// InsightsMarkdown shows the insights derived for period.
func InsightsMarkdown(period core.Period, insights []analytics.Insight, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Insights for " + period.Label())
	insightList(doc, insights, currency)
	doc.Build()
	return buf.String()
}

// DashboardMarkdown renders every view of d.
func DashboardMarkdown(d services.Dashboard, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	s := d.Summary

	doc.H1("Dashboard")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total spent", md.Bold(s.TotalSpent.Format(currency))},
			{"Transactions", fmt.Sprint(s.Count)},
			{"Average transaction", s.AverageTransaction.Format(currency)},
			{"Largest transaction", s.LargestTransaction.Format(currency)},
			{"Top category", fmt.Sprintf("%s (%s)", s.TopCategory.Category.Name, s.TopCategory.Amount.Format(currency))},
		},
	})

	doc.H2("Recent transactions")
	if len(s.RecentTransactions) == 0 {
		doc.PlainText("No transactions yet.")
	} else {
		doc.Table(md.TableSet{
			Header: []string{"Date", "Description", "Category", "Amount"},
			Rows:   transactionRows(s.RecentTransactions, currency, false),
		})
	}

	if len(d.Categories) > 0 {
		doc.H2("Spending by category")
		var rows [][]string
		for _, c := range d.Categories {
			rows = append(rows, []string{c.Category.Name, c.Amount.Format(currency), percent(c.Share)})
		}
		doc.Table(md.TableSet{Header: []string{"Category", "Amount", "Share"}, Rows: rows})
	}

	if len(d.Monthly) > 0 {
		doc.H2("Monthly spending")
		var rows [][]string
		for _, m := range d.Monthly {
			rows = append(rows, []string{m.Label, m.Amount.Format(currency)})
		}
		doc.Table(md.TableSet{Header: []string{"Month", "Amount"}, Rows: rows})
	}

	doc.H2("Budget vs actual, " + d.Period.Label())
	comparisonTable(doc, d.Comparison, currency)

	doc.H2("Insights")
	insightList(doc, d.Insights, currency)

	doc.Build()
	return buf.String()
}
