package snipdeck

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck/pkg/clipboard"
	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Option is a function that configures a Client instance
type Option func(*config) error

// config holds the configuration for a Client instance
type config struct {
	source       loader.Source
	loaderOpts   []loader.Option
	registry     *snippets.Registry
	logger       *zerolog.Logger
	static       []snippets.Snippet
	policy       loader.FailurePolicy
	idMode       loader.IDMode
	clipboard    clipboard.Writer
	copyFeedback time.Duration
}

func defaultConfig() *config {
	return &config{
		registry:     snippets.DefaultRegistry(),
		logger:       logging.Default(),
		policy:       loader.FailPartial,
		idMode:       loader.IDSynthesized,
		clipboard:    clipboard.System(),
		copyFeedback: constants.CopyFeedbackDuration,
	}
}

// options applies the given options to the config
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithSource configures the per-category source. Defaults to the embedded catalog.
func WithSource(src loader.Source) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("source", nil, "source cannot be nil")
		}
		c.source = src
		return nil
	}
}

// WithIDMode configures how the loader produces ids for WithSource.
func WithIDMode(mode loader.IDMode) Option {
	return func(c *config) error {
		c.idMode = mode
		return nil
	}
}

// WithLoaderOptions appends raw loader options. They are applied last.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(c *config) error {
		c.loaderOpts = append(c.loaderOpts, opts...)
		return nil
	}
}

// WithRegistry configures the category registry
func WithRegistry(reg *snippets.Registry) Option {
	return func(c *config) error {
		if reg == nil {
			return errors.NewValidationError("registry", nil, "registry cannot be nil")
		}
		c.registry = reg
		return nil
	}
}

// WithLogger configures the logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithStaticSnippets serves a single flat array with authored ids instead
// of per-category modules.
func WithStaticSnippets(list []snippets.Snippet) Option {
	return func(c *config) error {
		c.static = snippets.CloneAll(list)
		return nil
	}
}

// WithFailurePolicy configures how a failing category affects a full load
func WithFailurePolicy(policy loader.FailurePolicy) Option {
	return func(c *config) error {
		c.policy = policy
		return nil
	}
}

// WithClipboard configures the clipboard used by sessions
func WithClipboard(w clipboard.Writer) Option {
	return func(c *config) error {
		if w == nil {
			w = clipboard.Unavailable
		}
		c.clipboard = w
		return nil
	}
}

// WithCopyFeedback configures how long copy feedback stays visible
func WithCopyFeedback(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.NewValidationError("copy_feedback", d, "duration must be positive")
		}
		c.copyFeedback = d
		return nil
	}
}
