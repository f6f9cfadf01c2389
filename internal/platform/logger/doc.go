// Package logger provides structured logging functionality for the
// application, built on log/slog. It configures the process-wide JSON
// logger and carries request-scoped loggers through context.
package logger
