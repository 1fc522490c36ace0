package proto

import "strings"

// Command-list framing lines. A multi-command unit is sent between
// these two literals; the server answers the whole unit with a single
// terminating sentinel.
const (
	ListBegin = "command_list_begin"
	ListEnd   = "command_list_end"
)

// WrapList frames a set of commands for transmission. A single command
// is returned as-is; two or more are wrapped in command-list markers so
// the server treats them as one unit. The input slice is not modified.
func WrapList(commands []string) []string {
	if len(commands) <= 1 {
		out := make([]string, len(commands))
		copy(out, commands)
		return out
	}

	out := make([]string, 0, len(commands)+2)
	out = append(out, ListBegin)
	out = append(out, commands...)
	out = append(out, ListEnd)
	return out
}

// Quote escapes and quotes a command argument. MPD arguments containing
// spaces or quotes must be sent double-quoted with backslash escapes.
func Quote(arg string) string {
	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
