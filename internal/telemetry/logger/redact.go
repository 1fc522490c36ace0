package logger

import (
	"log/slog"
	"strings"
)

// redactedValue replaces sensitive values in log output.
const redactedValue = "****"

// passwordCommand is the one MPD command whose argument is a secret.
const passwordCommand = "password"

// RedactCommand masks the argument of a password command. Every other
// command is returned unchanged. Callers logging outbound protocol
// lines must pass them through here.
func RedactCommand(cmd string) string {
	trimmed := strings.TrimLeft(cmd, " \t")
	if trimmed == passwordCommand || strings.HasPrefix(trimmed, passwordCommand+" ") {
		return passwordCommand + " " + redactedValue
	}
	return cmd
}

// redactAttr masks sensitive attributes. Attributes keyed "command"
// carry outbound protocol lines and are filtered through
// RedactCommand; attributes keyed "password" are masked outright.
func redactAttr(a slog.Attr) slog.Attr {
	switch a.Key {
	case "password":
		return slog.String(a.Key, redactedValue)
	case "command":
		if a.Value.Kind() == slog.KindString {
			return slog.String(a.Key, RedactCommand(a.Value.String()))
		}
	}
	return a
}
