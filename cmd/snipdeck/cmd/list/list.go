// Package list provides the list command.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/globals"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   "List and search snippets",
		Long: `List shows the snippets of the catalog in catalog order.

--search matches title, tags and code case-insensitively. --category
restricts the result to one category key (see "snipdeck categories").`,
		Example: `  snipdeck list                           # Every snippet
  snipdeck list --search hook             # Search title, tags and code
  snipdeck list -c python -o json         # One category as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, search, category)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive search term")
	cmd.Flags().StringVarP(&category, "category", "c", string(snippets.All), "Category key or 'all'")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, search, category string) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}
	reg := client.Registry()

	key, err := reg.Parse(category)
	if err != nil {
		return err
	}

	catalog, err := client.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	f := query.Filter{Search: search, Category: key}
	result := f.Apply(catalog)

	app.Logger().Debug().
		Str("search", search).
		Str("category", string(key)).
		Int("matches", len(result)).
		Msg("Query applied")

	if len(result) == 0 && isTable(format) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), query.NoResultsMessage(search)); err != nil {
			return err
		}
	} else if err := output.FormatSnippets(cmd.OutOrStdout(), result, reg, format); err != nil {
		return err
	}

	if flags, _ := globals.Parse(cmd); !flags.Quiet {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), query.Summarize(catalog, result).String())
	}
	return nil
}

func isTable(f output.Format) bool {
	return f == output.FormatTable || f == output.FormatWide
}
