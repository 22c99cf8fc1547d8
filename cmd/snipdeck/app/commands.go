package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/categories"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/clip"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/export"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/list"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/serve"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/show"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/validate"
	"github.com/agentstation/snipdeck/cmd/snipdeck/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(withGroup(list.NewCommand(a), "core"))
	rootCmd.AddCommand(withGroup(show.NewCommand(a), "core"))
	rootCmd.AddCommand(withGroup(categories.NewCommand(a), "core"))
	rootCmd.AddCommand(withGroup(clip.NewCommand(a), "core"))
	rootCmd.AddCommand(withGroup(serve.NewCommand(a), "core"))

	// Management commands
	rootCmd.AddCommand(withGroup(export.NewCommand(a), "management"))
	rootCmd.AddCommand(withGroup(validate.NewCommand(a), "management"))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}
