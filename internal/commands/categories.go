package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/spend/internal/render"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "categories",
		Short:       "List the expense categories",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.Categories(cmd.OutOrStdout())
		},
	}
}
