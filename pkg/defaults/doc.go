// Package defaults provides centralized configuration constants for the docs
// server and CLI.
//
// # Categories
//
//   - Server timeouts: HTTP server configuration and graceful shutdown
//   - Rate limiting: token bucket applied to page and API routes
//   - Handler timeouts: rendering and publishing work per request
//   - HTTP client timeouts: outbound requests made by the CLI
//   - Live reload: watch mode debounce and websocket deadlines
//
// # Usage
//
//	srv := &http.Server{
//	    ReadTimeout:  defaults.ServerReadTimeout,
//	    WriteTimeout: defaults.ServerWriteTimeout,
//	}
//
// Values are tuned for a single replica serving a small, mostly static
// document, so they favor quick shutdown over long-running requests.
package defaults
