// Package cli implements the docs command-line tool.
//
// # Commands
//
// list - summarize the catalog:
//
//	docs list [--format table|json|yaml] [--data-dir DIR | --server URL]
//
// show - print one service record with its endpoint index:
//
//	docs show auth-service --format yaml
//
// search - find endpoints whose title, path or description contains the
// query, case insensitively:
//
//	docs search login
//
// render - write the page as a static site:
//
//	docs render --output ./site
//	docs render --output cm://docs/api-docs
//	docs render --output oci://ghcr.io/futureguide/api-docs:v1
//
// serve - run the documentation server:
//
//	docs serve --port 8080 --data-dir ./catalog --watch
//
// # Sources
//
// The read commands use the catalog compiled into the binary unless
// --data-dir names a catalog directory or --server names a running docs
// server, in which case the JSON API is queried instead.
//
// # Output
//
// --output accepts a file path or a ConfigMap URI (cm://namespace/name).
// Without it results go to stdout. The table format prints one row per
// service or endpoint.
package cli
