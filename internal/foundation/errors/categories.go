package errors

// ErrorCategory routes an error to an exit code or HTTP status.
type ErrorCategory string

const (
	// Operator input: config file, flags, query parameters, unknown routes.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Content: pages that cannot be read or parsed.
	CategoryDocs       ErrorCategory = "docs"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorContext holds structured details reported with an error.
type ErrorContext map[string]any
