// Package server provides the HTTP runtime shared by the docs daemon.
//
// It owns the listener, the middleware chain and the system probes while
// callers supply the routes. Handlers registered with WithHandler run
// behind the full chain:
//
//   - Prometheus request metrics labelled by the matched route pattern
//   - API version negotiation from the Accept header
//   - Request ID propagation through X-Request-Id
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Debug request logging
//
// Handlers registered with WithRawHandler only get metrics. They serve
// static assets and long-lived websocket connections.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("docsd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /{$}": site.HandlePage,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until listening and during shutdown
//	GET /metrics  Prometheus exposition
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS and DOCS_RATE_LIMIT from
// the environment. Run also signals readiness to systemd when started
// under a notify unit.
//
// Errors use ErrorResponse:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "service \"billing\" not found",
//	  "requestId": "d3c1...",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
package server
