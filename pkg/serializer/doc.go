// Package serializer writes docs data to stdout, files, HTTP responses and
// Kubernetes ConfigMaps, and reads it back from a running docs server.
//
// # Formats
//
//   - json: indented, without HTML escaping so paths stay readable
//   - yaml: two-space indent via gopkg.in/yaml.v3
//   - table: aligned columns for values implementing Tabular, otherwise a
//     sorted FIELD/VALUE listing of the flattened value
//
// Unknown formats fall back to JSON with a warning.
//
// # Destinations
//
//	s := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer serializer.Close(s)
//	if err := s.Serialize(ctx, services); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout and cm://namespace/name applies a
// ConfigMap with server-side apply. A Bundle, such as a rendered site, is
// stored one key per file and is rejected by stream writers.
//
// # HTTP
//
// RespondJSON buffers the encoding before writing headers so a failed
// encode never produces a partial 200. HttpReader is the matching client:
// non-200 responses carrying an API error body come back as a
// StructuredError with the server's code.
package serializer
