// Package export provides the export command.
package export

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/constants"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	pkgconstants "github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	var category, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as markdown, JSON or YAML",
		Long: `Export writes the catalog as one document grouped by category in
declaration order. The global --format flag selects markdown (default),
json or yaml.`,
		Example: `  snipdeck export > SNIPPETS.md
  snipdeck export --format json --category react
  snipdeck export -o yaml -f catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.FormatMarkdown
			if app.OutputFormat() != "" {
				parsed, err := output.ParseFormat(app.OutputFormat())
				if err != nil {
					return err
				}
				format = parsed
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
			list, err := client.Category(cmd.Context(), key)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if file != "" {
				f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, pkgconstants.FilePermissions)
				if err != nil {
					return errors.WrapIO("create", file, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			return output.WriteDocument(w, output.NewDocument(constants.ExportTitle, list, reg), format)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(snippets.All), "Category key or 'all'")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to file instead of stdout")

	return cmd
}
