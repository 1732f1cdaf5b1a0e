// Package site serves the rendered API documentation.
//
// A Site holds the current catalog and the document rendered from it. Both
// are replaced together by Reload, so a request always sees a consistent
// pair even while the data directory is being edited.
//
// Routes:
//
//	GET  /                         documentation page (?q= pre-filters cards)
//	POST /theme                    toggle the light/dark preference cookie
//	GET  /v1/services              ServiceList
//	GET  /v1/services/{id}         ServiceDetail
//	GET  /v1/services/{id}/html    rendered section of one service
//	GET  /v1/search?q=             SearchResult
//
// Export produces the same page as a static Bundle that can be written to
// a directory, a ConfigMap, or an OCI artifact.
package site
