package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/snipdeck/internal/server/middleware"
	"github.com/agentstation/snipdeck/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.applyMiddleware(mux)
}

// allow restricts a handler to one HTTP method.
func allow(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h(w, r)
	}
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	prefix := s.config.PathPrefix
	h := s.handlers

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("/health", allow(http.MethodGet, h.HandleHealth))
	mux.HandleFunc(prefix+"/health", allow(http.MethodGet, h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", allow(http.MethodGet, h.HandleReady))

	// Snippets
	mux.HandleFunc(prefix+"/snippets", allow(http.MethodGet, h.HandleListSnippets))
	mux.HandleFunc(prefix+"/snippets/{id}", allow(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetSnippet(w, r, r.PathValue("id"))
	}))

	// Categories
	mux.HandleFunc(prefix+"/categories", allow(http.MethodGet, h.HandleListCategories))

	// Admin
	mux.HandleFunc(prefix+"/reload", allow(http.MethodPost, h.HandleReload))
	mux.HandleFunc(prefix+"/stats", allow(http.MethodGet, h.HandleStats))

	// Real-time
	mux.HandleFunc(prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc(prefix+"/updates/stream", h.HandleSSE)

	// OpenAPI
	mux.HandleFunc(prefix+"/openapi.json", allow(http.MethodGet, h.HandleOpenAPIJSON))
	mux.HandleFunc(prefix+"/openapi.yaml", allow(http.MethodGet, h.HandleOpenAPIYAML))

	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain. Recovery is the
// outermost layer.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
	}

	if s.metrics != nil {
		chain = append(chain, s.metrics.Middleware(s.routeLabel))
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if s.limiter != nil {
		chain = append(chain, middleware.RateLimit(s.limiter))
	}

	return middleware.Chain(chain...)(handler)
}

// routeLabel maps a request path to its route template for metrics.
func (s *Server) routeLabel(r *http.Request) string {
	prefix := s.config.PathPrefix
	path := r.URL.Path

	switch path {
	case "/health", "/metrics", prefix + "/health", prefix + "/ready",
		prefix + "/snippets", prefix + "/categories", prefix + "/reload",
		prefix + "/stats", prefix + "/updates/ws", prefix + "/updates/stream",
		prefix + "/openapi.json", prefix + "/openapi.yaml":
		return path
	}

	if rest, ok := strings.CutPrefix(path, prefix+"/snippets/"); ok && rest != "" && !strings.Contains(rest, "/") {
		return prefix + "/snippets/{id}"
	}
	return "other"
}
