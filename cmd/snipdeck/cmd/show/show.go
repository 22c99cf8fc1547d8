// Package show provides the show command.
package show

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	"github.com/agentstation/snipdeck/internal/cmd/table"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	var codeOnly bool

	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get", "cat"},
		Short:   "Show one snippet with its code",
		Example: `  snipdeck show react-1
  snipdeck show python-2 --code > snippet.py
  snipdeck show spring-boot-3 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], codeOnly)
		},
	}

	cmd.Flags().BoolVar(&codeOnly, "code", false, "Print only the code, verbatim")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, id string, codeOnly bool) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	s, err := client.Find(cmd.Context(), id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if codeOnly {
		_, err := fmt.Fprint(w, s.Code)
		return err
	}

	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}
	reg := client.Registry()

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, s)
	case output.FormatMarkdown:
		return output.WriteDocument(w, output.NewDocument(s.Title, []snippets.Snippet{s}, reg), format)
	default:
		if err := output.NewFormatter(format).Format(w, table.SnippetDetail(s, reg)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%s\n", s.Code)
		return err
	}
}
