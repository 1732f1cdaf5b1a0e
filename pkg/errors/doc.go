// Package errors provides structured error types for better observability
// and programmatic error handling across the docs server and CLI.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidData,
//	    "failed to parse service file",
//	    yamlErr,
//	    map[string]any{
//	        "service": id,
//	        "file":    path,
//	    },
//	)
//
// The HTTP layer maps codes to status codes, see server.WriteErrorFromErr.
package errors
