package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spend/internal/session"
)

func newSessionCommand(a *app) *cobra.Command {
	var seedPath string
	var format string
	var breakdown bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session (nothing is saved when it ends)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(session.Options{
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				Now:    a.now,
				NewID:  a.newID,
				Logger: a.log,
				Render: a.renderOptions(breakdown),
				Prompt: a.cfg.Session.Prompt,
			})

			if seedPath != "" {
				f, err := os.Open(seedPath)
				if err != nil {
					return fmt.Errorf("opening seed file: %w", err)
				}
				defer f.Close()

				records, err := a.importers().Parse(format, f)
				if err != nil {
					return fmt.Errorf("reading %s: %w", seedPath, err)
				}
				s.Seed(records)
			}

			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "CSV file to preload")
	cmd.Flags().StringVar(&format, "format", "spend", "seed file format (spend, chase)")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "show per-category totals under stats")

	return cmd
}
