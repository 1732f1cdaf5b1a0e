// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/futureguide/api-docs/pkg/defaults"
	"github.com/futureguide/api-docs/pkg/serializer"
)

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	background  []func(context.Context) error
	mu          sync.RWMutex
	ready       bool
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName sets the server name reported in logs and the default route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler registers handlers served behind the full middleware chain.
// Keys are ServeMux patterns such as "GET /v1/services/{id}".
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for pattern, h := range handlers {
			s.config.Handlers[pattern] = h
		}
	}
}

// WithRawHandler registers a handler that skips rate limiting and logging.
func WithRawHandler(pattern string, h http.Handler) Option {
	return func(s *Server) {
		s.config.RawHandlers[pattern] = h
	}
}

// WithConfig replaces the server configuration. Handlers registered by
// earlier options are kept.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg == nil {
			return
		}
		for pattern, h := range s.config.Handlers {
			if _, ok := cfg.Handlers[pattern]; !ok {
				if cfg.Handlers == nil {
					cfg.Handlers = map[string]http.HandlerFunc{}
				}
				cfg.Handlers[pattern] = h
			}
		}
		if cfg.RawHandlers == nil {
			cfg.RawHandlers = map[string]http.Handler{}
		}
		for pattern, h := range s.config.RawHandlers {
			if _, ok := cfg.RawHandlers[pattern]; !ok {
				cfg.RawHandlers[pattern] = h
			}
		}
		s.config = cfg
	}
}

// WithBackground adds a task that runs alongside the listener and stops
// with it. A task returning an error stops the server.
func WithBackground(fn func(ctx context.Context) error) Option {
	return func(s *Server) {
		if fn != nil {
			s.background = append(s.background, fn)
		}
	}
}

// New creates a new server instance with the given options.
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if _, ok := s.config.Handlers["/"]; !ok {
		s.config.Handlers["/"] = s.handleDefault
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	return s
}

// Handler returns the routed handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	for pattern, h := range s.config.RawHandlers {
		mux.Handle(pattern, s.metricsMiddleware(h.ServeHTTP))
	}

	for pattern, h := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(h))
	}

	return mux
}

// routes lists the registered handler patterns in sorted order.
func (s *Server) routes() []string {
	list := make([]string, 0, len(s.config.Handlers)+len(s.config.RawHandlers)+3)
	list = append(list, "GET /health", "GET /ready", "GET /metrics")
	for pattern := range s.config.Handlers {
		list = append(list, pattern)
	}
	for pattern := range s.config.RawHandlers {
		list = append(list, pattern)
	}
	sort.Strings(list)
	return list
}

// handleDefault reports the server identity and its routes.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("no route for %s", r.URL.Path), false, nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, map[string]any{
		"service": s.config.Name,
		"version": s.config.Version,
		"routes":  s.routes(),
	})
}

// setReady marks the server as ready to serve traffic
func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// isReady reports the current readiness.
func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.setReady(true)

	slog.Info("server listening",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", ln.Addr().String(),
	)

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		slog.Warn("failed to notify systemd", "error", err)
	} else if sent {
		slog.Debug("notified systemd of readiness")
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	if _, err := daemon.SdNotify(false, daemon.SdNotifyStopping); err != nil {
		slog.Debug("failed to notify systemd of shutdown", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Run starts the server and its background tasks, blocking until ctx is
// cancelled or one of them fails.
func (s *Server) Run(ctx context.Context) error {
	slog.Debug("server config",
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"readTimeout", s.config.ReadTimeout.String(),
		"writeTimeout", s.config.WriteTimeout.String(),
		"idleTimeout", s.config.IdleTimeout.String(),
		"shutdownTimeout", s.config.ShutdownTimeout.String(),
		"routes", len(s.config.Handlers)+len(s.config.RawHandlers),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Start(gctx)
	})

	for _, task := range s.background {
		g.Go(func() error {
			return task(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
