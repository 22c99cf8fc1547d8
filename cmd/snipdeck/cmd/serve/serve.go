// Package serve provides the serve command for the snippet HTTP API.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/emoji"
	"github.com/agentstation/snipdeck/internal/server"
	"github.com/agentstation/snipdeck/internal/sources/files"
	"github.com/agentstation/snipdeck/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only snippet API",
		Long: `Start the HTTP API for the snippet catalog.

Features:
  - Snippet listing with search and category filters
  - Category listing with per-category counts
  - Reload endpoint plus WebSocket and SSE reload notifications
  - In-memory response caching with configurable TTL
  - Rate limiting (requests per minute per IP)
  - Prometheus metrics at /metrics
  - Optional file watching of the --source directory

Environment Variables:
  HTTP_PORT    - Override the listen port
  HTTP_HOST    - Override the bind address`,
		Example: `  # Start on default port 8080
  snipdeck serve

  # Serve a snippet directory and reload when it changes
  snipdeck serve --source ./snippets --watch

  # Allow a browser app to call the API
  snipdeck serve --cors-origins "http://localhost:5173"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd, app.ServerSettings())
			if err != nil {
				return err
			}
			watch, _ := cmd.Flags().GetBool("watch")
			return run(cmd, app, cfg, watch)
		},
	}

	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable the /metrics endpoint")
	cmd.Flags().Bool("watch", false, "Reload the catalog when the --source path changes")

	return cmd
}

// configFromFlags builds the server config. Precedence is HTTP_PORT and
// HTTP_HOST, then explicit flags, then settings, then flag defaults.
func configFromFlags(cmd *cobra.Command, settings *application.ServerSettings) (server.Config, error) {
	cfg := server.DefaultConfig()

	cfg.Port, _ = cmd.Flags().GetInt("port")
	cfg.Host, _ = cmd.Flags().GetString("host")
	cfg.PathPrefix, _ = cmd.Flags().GetString("prefix")
	cfg.CORSEnabled, _ = cmd.Flags().GetBool("cors")
	cfg.CORSOrigins, _ = cmd.Flags().GetStringSlice("cors-origins")
	cfg.RateLimit, _ = cmd.Flags().GetInt("rate-limit")
	cfg.CacheTTL, _ = cmd.Flags().GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
	cfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
	cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")
	cfg.MetricsEnabled, _ = cmd.Flags().GetBool("metrics")

	if settings != nil {
		applySettings(cmd, &cfg, settings)
	}

	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		port, err := parsePort(envPort)
		if err != nil {
			return cfg, errors.WrapValidation("HTTP_PORT", err)
		}
		cfg.Port = port
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, fmt.Sprintf("port out of range: %d", cfg.Port))
	}
	return cfg, nil
}

// applySettings fills every field whose flag was not set explicitly.
func applySettings(cmd *cobra.Command, cfg *server.Config, s *application.ServerSettings) {
	unset := func(name string) bool { return !cmd.Flags().Changed(name) }

	if unset("host") && s.Host != "" {
		cfg.Host = s.Host
	}
	if unset("port") && s.Port != 0 {
		cfg.Port = s.Port
	}
	if unset("prefix") && s.Prefix != "" {
		cfg.PathPrefix = s.Prefix
	}
	if unset("cache-ttl") && s.CacheTTL > 0 {
		cfg.CacheTTL = s.CacheTTL
	}
	if unset("rate-limit") {
		cfg.RateLimit = s.RateLimit
	}
	if unset("cors-origins") && len(s.CORSOrigins) > 0 {
		cfg.CORSOrigins = s.CORSOrigins
	}
	if unset("metrics") {
		cfg.MetricsEnabled = s.Metrics
	}
}

func run(cmd *cobra.Command, app application.Application, cfg server.Config, watch bool) error {
	logger := app.Logger()
	ctx := cmd.Context()

	source := app.SourcePath()
	if watch && source == "" {
		return errors.NewValidationError("watch", nil, "--watch requires --source")
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("watch", watch).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	srv.Start()

	if watch {
		watcher, err := files.NewWatcher(source, func(ctx context.Context) {
			if err := srv.Reload(ctx); err != nil {
				logger.Error().Err(err).Msg("Reload after source change failed")
				return
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Catalog reloaded from %s\n", emoji.Reload, source)
		}, files.WithWatchLogger(logger))
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("File watcher stopped")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return startWithGracefulShutdown(ctx, cmd, httpServer, srv)
}
