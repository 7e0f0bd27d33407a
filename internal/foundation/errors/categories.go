package errors

import "maps"

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryUnknownControl marks a control name that matches no classification rule.
	CategoryUnknownControl ErrorCategory = "unknown_control"
	// CategoryTypeMismatch marks a hardware-reported control type that differs from the expected kind.
	CategoryTypeMismatch ErrorCategory = "type_mismatch"

	// Value model errors.
	CategoryNotPopulated     ErrorCategory = "not_populated"
	CategoryInvalidEnumValue ErrorCategory = "invalid_enum_value"

	// Document errors.
	CategoryMissingKey ErrorCategory = "missing_key"
	CategoryUnknownKey ErrorCategory = "unknown_key"

	// CategoryTransport covers failures of the external mixer-control command.
	CategoryTransport ErrorCategory = "transport"

	CategoryConfig   ErrorCategory = "config"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext)
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
