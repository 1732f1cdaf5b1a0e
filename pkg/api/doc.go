// Package api assembles the documentation daemon.
//
// It is a thin layer over pkg/server: it loads the catalog, builds a
// pkg/site Site and registers its routes, then hands lifecycle management
// to the server.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /                      documentation page
//   - POST /theme                 theme toggle
//   - GET  /v1/services           service list
//   - GET  /v1/services/{id}      one service record
//   - GET  /v1/services/{id}/html rendered service section
//   - GET  /v1/search?q=          endpoint search
//
// Asset endpoints (not rate limited):
//   - GET /static/     stylesheet and script
//   - GET /livereload  websocket reload notifications, only with DOCS_WATCH
//
// System endpoints:
//   - GET /health, GET /ready, GET /metrics
//
// # Configuration
//
//   - PORT: HTTP port (default 8080)
//   - LOG_LEVEL: debug, info, warn or error
//   - DOCS_DATA_DIR: catalog directory to serve instead of the embedded one
//   - DOCS_WATCH: reload on changes below DOCS_DATA_DIR and notify open pages
//   - DOCS_RATE_LIMIT: requests per second
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/futureguide/api-docs/pkg/api.version=1.0.0'"
package api
