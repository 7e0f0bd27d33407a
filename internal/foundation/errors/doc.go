// Package errors provides the classified error type used across scarlettcfg.
//
// Every failure the tool can report belongs to one ErrorCategory. Discovery, document
// loading and hardware sync never recover from an error internally; the category only
// drives how the CLI presents the failure.
//
// Key features:
//   - ErrorCategory: classification (unknown_control, type_mismatch, missing_key, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: presentation and exit status for the command line
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryTypeMismatch, "control type mismatch").
//		WithContext("handle", 12).
//		WithContext("expected", "BOOLEAN").
//		WithCause(originalErr).
//		Build()
package errors
