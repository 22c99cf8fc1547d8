// Package categories provides the categories command.
package categories

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	"github.com/agentstation/snipdeck/internal/cmd/table"
)

// NewCommand creates the categories command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List categories with snippet counts",
		Long: `Categories lists every declared category in declaration order with
the number of snippets it holds. Declared categories without snippets
report 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			counts, err := client.Counts(cmd.Context())
			if err != nil {
				return err
			}

			rows := table.CategoryRows(client.Registry(), counts)
			return output.FormatCategories(cmd.OutOrStdout(), rows, format)
		},
	}
}
