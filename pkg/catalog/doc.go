// Package catalog holds the documentation records rendered by the site.
//
// The catalog is an ordered, immutable list of services. Each service is
// one of two record shapes selected by the "kind" field of its data file:
//
//   - standard: a microservice with an endpoint list and optional
//     WebSocket, implementation and troubleshooting blocks (*Standard)
//   - sharing: a feature document made of sections (*SharingDoc)
//
// Records are loaded from YAML. The default catalog is embedded in the
// binary under data/:
//
//	data/catalog.yaml          manifest with the navigation order
//	data/services/<id>.yaml    one record per service
//
// Usage:
//
//	cat, err := catalog.Default()
//	if err != nil {
//	    return err
//	}
//	for _, e := range cat.All() {
//	    fmt.Println(e.ID, e.Endpoints())
//	}
//
// LoadDir reads the same layout from disk, which the dev server uses to
// pick up edits without a rebuild.
//
// Example bodies are kept as Payload values. A Payload preserves the key
// order of the data file and prints as JSON with two-space indentation.
package catalog
