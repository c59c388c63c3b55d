// Package errors provides the classified error primitives used across docnav.
//
// Errors carry a category (config, docs, not_found, ...), a fatal flag and a
// small key/value context. Adapters translate them into CLI exit codes and
// HTTP status codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryConfig, "invalid sidebar config").
//		WithContext("path", cfgPath).
//		WithCause(yamlErr).
//		Build()
package errors
