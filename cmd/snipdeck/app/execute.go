package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/internal/cmd/globals"
	"github.com/agentstation/snipdeck/internal/cmd/hints"
)

// Execute runs the snipdeck CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	var flags *globals.Flags

	rootCmd := &cobra.Command{
		Use:     "snipdeck",
		Short:   "Code snippet catalog CLI",
		Version: a.version,
		Long: `Snipdeck is a searchable catalog of reusable code snippets grouped
by technology category (JavaScript, React, Spring Boot, Java, Svelte, Python).

It ships with an embedded catalog and can read snippets from a directory of
<category>.yaml files or a single YAML file with --source. The catalog can be
listed, searched, copied to the clipboard, exported, or served over HTTP.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags = globals.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("snipdeck {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. An explicit --config file
// is loaded first so flags still override it.
func (a *App) setupCommand(flags *globals.Flags) error {
	if flags.Config != "" && flags.Config != a.config.ConfigFile {
		config, err := LoadConfig(flags.Config)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err with any matching hint and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	if h := hints.ForError(err); h != nil {
		_, _ = fmt.Fprintln(w, h.String())
	}
}
