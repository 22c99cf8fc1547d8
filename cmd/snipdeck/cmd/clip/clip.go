// Package clip provides the copy command.
package clip

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/pkg/clipboard"
)

// NewCommand creates the copy command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a snippet's code to the system clipboard",
		Long: `Copy writes the code of one snippet to the system clipboard and
prints "Copied!" or "Failed!". A clipboard failure is reported but does not
fail the command; an unknown id does.`,
		Example: `  snipdeck copy react-1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			session := client.NewSession()
			status, err := session.Copy(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if status == clipboard.StatusFailed {
				w = cmd.ErrOrStderr()
			}
			_, err = fmt.Fprintln(w, status.String())
			return err
		},
	}
}
