// Package logger builds the log/slog loggers used by the game SDK
// servers: JSON or text output, one process-wide level that can change at
// runtime, redaction of credential-looking attributes and automatic
// request IDs for records logged with a request context.
package logger
