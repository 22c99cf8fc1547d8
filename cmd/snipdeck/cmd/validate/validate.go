// Package validate provides the validate command.
package validate

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/alerts"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// ErrInvalid is returned when the catalog has problems.
var ErrInvalid = errors.New("catalog validation failed")

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the snippet catalog",
		Long: `Validate loads every category from the configured source and checks
each snippet: a title, a known category and code are required, titles are
bounded, and ids must be unique. Category modules that fail to load are
reported as problems too.`,
		Example: `  snipdeck validate
  snipdeck validate --source ./snippets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}
}

func run(cmd *cobra.Command, app application.Application) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	// Categories load concurrently, so reports can arrive from several goroutines.
	var (
		mu       sync.Mutex
		problems []error
	)
	collect := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		problems = append(problems, err)
	}

	client, err := app.Client(snipdeck.WithLoaderOptions(loader.WithErrorHandler(collect)))
	if err != nil {
		return err
	}

	catalog, err := client.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	if err := snippets.ValidateCatalog(client.Registry(), catalog); err != nil {
		problems = append(problems, unwrapJoined(err)...)
	}

	writer := alerts.NewFormatWriter(cmd.OutOrStdout(), format)
	if len(problems) == 0 {
		return writer.WriteAlert(alerts.NewSuccess("Catalog is valid").
			WithDetails(fmt.Sprintf("%d snippets in %d categories", len(catalog), client.Registry().Len())))
	}

	details := make([]string, len(problems))
	for i, p := range problems {
		details[i] = p.Error()
	}
	app.Logger().Debug().Int("problems", len(problems)).Msg("Catalog validation failed")
	if err := writer.WriteAlert(alerts.NewError(fmt.Sprintf("Catalog has %d problem(s)", len(problems))).WithDetails(details...)); err != nil {
		return err
	}
	return ErrInvalid
}

// unwrapJoined flattens an errors.Join result.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
