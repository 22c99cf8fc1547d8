// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds global common flags across all commands.
type Flags struct {
	Output   string
	Quiet    bool
	Verbose  bool
	NoColor  bool
	LogLevel string
	Source   string
	Config   string
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVarP(&flags.Output, "output", "o", "",
		"Output format: table, wide, json, yaml, markdown")
	// --format is an alias for --output
	pf.StringVar(&flags.Output, "format", "", "")
	_ = pf.MarkHidden("format") // Hidden but functional

	pf.BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	pf.BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	pf.StringVar(&flags.LogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error)")
	pf.StringVar(&flags.Source, "source", "",
		"Snippet source: a directory of <category>.yaml files or a single YAML file (default: embedded catalog)")
	pf.StringVar(&flags.Config, "config", "",
		"Config file (default: ./.snipdeck.yaml or ~/.snipdeck.yaml)")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// This is useful for subcommands that need to access global flags when
// they weren't passed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	// Walk up the command hierarchy to find persistent flags
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}
	pf := root.PersistentFlags()

	output, _ := pf.GetString("output")
	quiet, _ := pf.GetBool("quiet")
	verbose, _ := pf.GetBool("verbose")
	noColor, _ := pf.GetBool("no-color")
	logLevel, _ := pf.GetString("log-level")
	source, _ := pf.GetString("source")
	config, _ := pf.GetString("config")

	return &Flags{
		Output:   output,
		Quiet:    quiet,
		Verbose:  verbose,
		NoColor:  noColor,
		LogLevel: logLevel,
		Source:   source,
		Config:   config,
	}, nil
}
