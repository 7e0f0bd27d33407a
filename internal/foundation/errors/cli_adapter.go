package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit status for the command line.
// Every failure maps to exit status 1; the category only shapes the message.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// WithOutput redirects error messages, which go to os.Stderr by default.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.stderr = w
	return a
}

// WithExit replaces os.Exit.
func (a *CLIErrorAdapter) WithExit(exit func(int)) *CLIErrorAdapter {
	a.exit = exit
	return a
}

// ExitCodeFor determines the process exit status for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok || a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}

	// Context carries the control name, handle or document key the user needs to fix.
	msg := fmt.Sprintf("Error: %s: %s", classified.Category(), classified.Message())
	for _, key := range []string{"control", "handle", "key", "value", "row", "channel", "mix", "path"} {
		if v, found := classified.Context().Get(key); found {
			msg += fmt.Sprintf(" %s=%v", key, v)
		}
	}
	if cause := classified.Cause(); cause != nil {
		msg += fmt.Sprintf(": %v", cause)
	}
	return msg
}

// HandleError processes an error and exits the program with a non-zero status.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.verbose {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if classified, ok := AsClassified(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(classified.Category())),
		}
		for k, v := range classified.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.LogAttrs(context.Background(), a.slogLevelFromSeverity(classified.Severity()), classified.Message(), attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts ClassifiedError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
