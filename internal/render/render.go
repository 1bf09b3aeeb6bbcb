// Package render prints expense lists and statistics for a terminal.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/expenses"
	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/model"
	"github.com/cleared-dev/spend/internal/stats"
)

// Options controls formatting.
type Options struct {
	CurrencySymbol string
	DateFormat     string
	Breakdown      bool // Stats: include per-category totals
}

// DefaultOptions matches config.Default().
func DefaultOptions() Options {
	return Options{CurrencySymbol: "$", DateFormat: "Jan 02, 2006"}
}

// Money formats an amount with two decimals, e.g. "$12.40".
func (o Options) Money(d decimal.Decimal) string {
	return o.CurrencySymbol + d.StringFixed(2)
}

func (o Options) date(e model.Expense) string {
	layout := o.DateFormat
	if layout == "" {
		layout = model.DateFormat
	}
	return e.Date.Format(layout)
}

// List writes records in the given order, numbered from 1.
func List(w io.Writer, records []model.Expense, opts Options) error {
	if len(records) == 0 {
		_, err := fmt.Fprint(w, "No expenses yet\nAdd your first expense to get started!\n")
		return err
	}
	for i, e := range records {
		_, err := fmt.Fprintf(w, "#%d [%s] %s (%s)\n    %s\n    %s\n",
			i+1, e.Category, opts.date(e), id.Short(e.ID),
			e.Description, opts.Money(e.Amount))
		if err != nil {
			return err
		}
	}
	return nil
}

// Stats writes the total, this-month, and top-category cards.
func Stats(w io.Writer, snap stats.Snapshot, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total Expenses\t%s\t%s\n", opts.Money(snap.Total), transactions(snap.TransactionCount))
	fmt.Fprintf(tw, "This Month\t%s\t%s\n", opts.Money(snap.MonthlyTotal), transactions(snap.MonthlyTransactionCount))
	if snap.HasTopCategory() {
		fmt.Fprintf(tw, "Top Category\t%s\t%s\n", snap.TopCategory, opts.Money(snap.TopCategoryTotal))
	} else {
		fmt.Fprintf(tw, "Top Category\tNone\t%s\n", opts.Money(decimal.Zero))
	}

	if opts.Breakdown && len(snap.ByCategory) > 0 {
		fmt.Fprintln(tw)
		for _, ct := range snap.ByCategory {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", ct.Category, opts.Money(ct.Total), transactions(ct.Count))
		}
	}
	return tw.Flush()
}

func transactions(n int) string {
	if n == 1 {
		return "1 transaction"
	}
	return fmt.Sprintf("%d transactions", n)
}

// CSV writes records in the expense CSV format.
func CSV(w io.Writer, records []model.Expense) error {
	return expenses.WriteExpenses(w, records)
}

// Categories writes the numbered category set.
func Categories(w io.Writer) error {
	for i, c := range model.Categories() {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, c); err != nil {
			return err
		}
	}
	return nil
}
