// Package server provides the HTTP server for the snipdeck API.
//
// The architecture follows the pattern: CLI -> App -> Server -> Router -> Handlers.
//
// Usage:
//
//	srv, err := server.New(app, server.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	srv.Start() // background services and initial catalog load
//	defer srv.Shutdown(ctx)
//	http.ListenAndServe(cfg.Addr(), srv.Handler())
package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/agentstation/utc"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/server/cache"
	"github.com/agentstation/snipdeck/internal/server/events"
	"github.com/agentstation/snipdeck/internal/server/events/adapters"
	"github.com/agentstation/snipdeck/internal/server/handlers"
	"github.com/agentstation/snipdeck/internal/server/middleware"
	"github.com/agentstation/snipdeck/internal/server/sse"
	ws "github.com/agentstation/snipdeck/internal/server/websocket"
	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         snipdeck.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	limiter        *middleware.RateLimiter
	metrics        *middleware.Metrics
	handlers       *handlers.Handlers
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	startTime      utc.Time
	ready          atomic.Bool
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	client, err := app.Client()
	if err != nil {
		return nil, err
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      utc.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}
	if cfg.MetricsEnabled {
		s.metrics = middleware.NewMetrics("snipdeck")
		s.metrics.Registry().MustRegister(newCatalogCollector(s))
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(_ *http.Request) bool {
			return true
		},
	}
	s.handlers = handlers.New(client, s.cache, broker, wsHub, sseBroadcaster, upgrader, logger, s.ready.Load)

	s.connectHooks()
	logger.Debug().Msg("Server instance created")
	return s, nil
}

// connectHooks registers client hooks that flush the query cache and
// publish catalog events to the broker.
func (s *Server) connectHooks() {
	s.client.OnCatalogLoaded(func(snap snipdeck.Snapshot) {
		s.cache.Clear()
		s.ready.Store(true)
		s.broker.Publish(events.CatalogReloaded, map[string]any{
			"total":     len(snap.Snippets),
			"counts":    snap.Counts,
			"source":    snap.Source,
			"loaded_at": snap.LoadedAt,
		})
		s.logger.Debug().Int("snippets", len(snap.Snippets)).Msg("Catalog reloaded event published")
	})

	s.client.OnSnippetAdded(func(sn snippets.Snippet) {
		s.broker.Publish(events.SnippetAdded, map[string]any{"snippet": sn})
	})

	s.client.OnSnippetUpdated(func(old, updated snippets.Snippet) {
		s.broker.Publish(events.SnippetUpdated, map[string]any{
			"old_snippet": old,
			"new_snippet": updated,
		})
	})

	s.client.OnSnippetRemoved(func(sn snippets.Snippet) {
		s.broker.Publish(events.SnippetRemoved, map[string]any{"snippet": sn})
	})
}

// Start starts background services and loads the first catalog snapshot.
func (s *Server) Start() {
	s.goRun(s.broker.Run)
	s.goRun(s.wsHub.Run)
	s.goRun(s.sseBroadcaster.Run)
	if s.limiter != nil {
		s.goRun(s.limiter.Run)
	}
	s.goRun(s.warm)
	s.logger.Debug().Msg("Background services started")
}

func (s *Server) goRun(fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// warm loads the catalog so readiness flips without waiting for a request.
func (s *Server) warm(ctx context.Context) {
	if _, err := s.client.Snapshot(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Initial catalog load failed")
		return
	}
	s.ready.Store(true)
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Reload replaces the catalog snapshot. Used by the file watcher.
func (s *Server) Reload(ctx context.Context) error {
	return s.client.Reload(ctx)
}

// Shutdown stops background services and waits for them until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Ready reports whether the first catalog snapshot has been loaded.
func (s *Server) Ready() bool {
	return s.ready.Load()
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() utc.Time {
	return s.startTime
}
