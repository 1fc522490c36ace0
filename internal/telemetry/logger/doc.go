// Package logger provides structured logging for mpdlink.
//
// This package wraps the standard library log/slog:
//
//   - logger.go: handler construction and dynamic level control
//   - redact.go: MPD password command redaction
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level adjustment
//   - Password arguments never reach log output
package logger
