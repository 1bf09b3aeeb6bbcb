package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spend/internal/expenses"
	"github.com/cleared-dev/spend/internal/model"
	"github.com/cleared-dev/spend/internal/render"
	"github.com/cleared-dev/spend/internal/stats"
)

func newReportCommand(a *app) *cobra.Command {
	var input string
	var format string
	var asOf string
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Load a CSV into a fresh store and print the list and statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := a.now()
			if asOf != "" {
				d, err := time.Parse(model.DateFormat, asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of %q: want YYYY-MM-DD", asOf)
				}
				ref = d
			}
			return a.runReport(cmd.OutOrStdout(), input, format, output, ref)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "CSV file to read (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&format, "format", "spend", "input format (spend, chase)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date for \"This Month\" (default today)")
	cmd.Flags().StringVar(&output, "output", "text", "output format (text, csv)")

	return cmd
}

func (a *app) runReport(out io.Writer, input, format, output string, ref time.Time) error {
	if output != "text" && output != "csv" {
		return fmt.Errorf("unknown --output %q: want text or csv", output)
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	records, err := a.importers().Parse(format, f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	store := expenses.NewStore()
	store.Seed(records)
	snap := store.Snapshot()
	a.log.WithField("count", len(snap)).WithField("format", format).Info("Report.Loaded")

	if output == "csv" {
		return render.CSV(out, snap)
	}

	opts := a.renderOptions(true)
	if err := render.List(out, snap, opts); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return render.Stats(out, stats.Compute(snap, ref), opts)
}
