package loader

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// IDMode selects how record ids are produced.
type IDMode int

const (
	// IDSynthesized assigns "<category>-<n>" with n restarting at 1 per category.
	IDSynthesized IDMode = iota
	// IDAuthored keeps authored ids and synthesizes only missing ones.
	IDAuthored
)

// String returns the mode name.
func (m IDMode) String() string {
	switch m {
	case IDAuthored:
		return "authored"
	default:
		return "synthesized"
	}
}

// FailurePolicy selects how a failing category affects an aggregate load.
type FailurePolicy int

const (
	// FailPartial drops only the failing categories.
	FailPartial FailurePolicy = iota
	// FailAll yields an empty catalog when any category fails.
	FailAll
)

// String returns the policy name as used in configuration.
func (p FailurePolicy) String() string {
	switch p {
	case FailAll:
		return "all"
	default:
		return "partial"
	}
}

// ParseFailurePolicy parses "partial" or "all". Empty selects FailPartial.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "partial":
		return FailPartial, nil
	case "all", "strict":
		return FailAll, nil
	default:
		return FailPartial, errors.NewValidationError("failure_policy", s,
			fmt.Sprintf("unknown failure policy %q (want partial or all)", s))
	}
}

type config struct {
	registry    *snippets.Registry
	idMode      IDMode
	policy      FailurePolicy
	logger      *zerolog.Logger
	concurrency int
	onError     ErrorHandler
}

// ErrorHandler observes load failures and records the loader dropped or
// re-identified. Neither propagates out of the Loader, so this is the only
// way to see them besides the log.
type ErrorHandler func(err error)

// Option is a function that configures a Loader.
type Option func(*config) error

// WithRegistry sets the category registry. Defaults to snippets.DefaultRegistry.
func WithRegistry(reg *snippets.Registry) Option {
	return func(c *config) error {
		if reg == nil {
			return errors.NewValidationError("registry", nil, "registry cannot be nil")
		}
		c.registry = reg
		return nil
	}
}

// WithIDMode sets how ids are produced.
func WithIDMode(mode IDMode) Option {
	return func(c *config) error {
		c.idMode = mode
		return nil
	}
}

// WithFailurePolicy sets the aggregate failure policy.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(c *config) error {
		c.policy = policy
		return nil
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithConcurrency limits how many categories load at once. Zero or less means no limit.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		c.concurrency = n
		return nil
	}
}

// WithErrorHandler registers fn to receive every category load failure and
// every rejected record as a *errors.ValidationError.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) error {
		c.onError = fn
		return nil
	}
}
