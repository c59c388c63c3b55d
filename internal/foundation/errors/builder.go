package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of category.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, message: message}}
}

// WrapError starts an error of category caused by err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.err.context == nil {
		b.err.context = ErrorContext{}
	}
	b.err.context[key] = value
	return b
}

// Fatal marks the error as stopping the process.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.fatal = true
	return b
}

// Build returns the error. The builder must not be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	return &out
}

func ConfigError(message string) *ErrorBuilder { return NewError(CategoryConfig, message).Fatal() }

func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }

// NotFoundError reports a lookup miss, e.g. an unknown route.
func NotFoundError(message string) *ErrorBuilder { return NewError(CategoryNotFound, message) }

func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }

func RuntimeError(message string) *ErrorBuilder { return NewError(CategoryRuntime, message).Fatal() }

func InternalError(message string) *ErrorBuilder { return NewError(CategoryInternal, message).Fatal() }
