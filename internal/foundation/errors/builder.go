package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityFatal,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithCause sets the underlying error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// WithContextMap adds multiple context values.
func (b *ErrorBuilder) WithContextMap(ctx ErrorContext) *ErrorBuilder {
	b.context = b.context.Merge(ctx)
	return b
}

// Warning sets the severity to warning.
func (b *ErrorBuilder) Warning() *ErrorBuilder {
	return b.WithSeverity(SeverityWarning)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors for the failure taxonomy.

// UnknownControl reports a control name that no classification rule accepts.
func UnknownControl(name string) *ErrorBuilder {
	return NewError(CategoryUnknownControl, "unknown control").
		WithContext("control", name)
}

// TypeMismatch reports a control whose hardware type differs from the expected kind.
func TypeMismatch(handle int, expected, actual string) *ErrorBuilder {
	return NewError(CategoryTypeMismatch, "control type mismatch").
		WithContext("handle", handle).
		WithContext("expected", expected).
		WithContext("actual", actual)
}

// NotPopulated reports an enumerated value used before discovery filled its items.
func NotPopulated() *ErrorBuilder {
	return NewError(CategoryNotPopulated, "enumerated value not populated")
}

// InvalidEnumValue reports a label outside the discovered item list.
func InvalidEnumValue(label string) *ErrorBuilder {
	return NewError(CategoryInvalidEnumValue, "invalid enumerated value").
		WithContext("value", label)
}

// MissingKey reports a required document field that is absent.
func MissingKey(path string) *ErrorBuilder {
	return NewError(CategoryMissingKey, "missing document key").
		WithContext("key", path)
}

// UnknownKey reports a document reference to a row, channel or mix that was never discovered.
func UnknownKey(kind, key string) *ErrorBuilder {
	return NewError(CategoryUnknownKey, "unknown "+kind).
		WithContext(kind, key)
}

// TransportError reports a failure of the external mixer-control command.
func TransportError(message string) *ErrorBuilder {
	return NewError(CategoryTransport, message)
}

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message)
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message)
}
