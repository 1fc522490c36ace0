package client

import (
	"errors"
	"testing"
)

func TestParseServerError(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want CommandError
	}{
		{
			name: "full form",
			msg:  `[50@0] {play} Bad song index`,
			want: CommandError{Code: 50, Index: 0, Command: "play", Message: "Bad song index"},
		},
		{
			name: "list index",
			msg:  `[2@1] {add} No such directory`,
			want: CommandError{Code: 2, Index: 1, Command: "add", Message: "No such directory"},
		},
		{
			name: "empty message",
			msg:  `[5@0] {ping}`,
			want: CommandError{Code: 5, Index: 0, Command: "ping", Message: ""},
		},
		{
			name: "no command braces",
			msg:  `[3@0] something went wrong`,
			want: CommandError{Code: 3, Index: 0, Command: "", Message: "something went wrong"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseServerError(tt.msg)
			var ce *CommandError
			if !errors.As(err, &ce) {
				t.Fatalf("parseServerError(%q) = %T, want *CommandError", tt.msg, err)
			}
			if *ce != tt.want {
				t.Errorf("parsed = %+v, want %+v", *ce, tt.want)
			}
		})
	}
}

func TestParseServerErrorUnstructured(t *testing.T) {
	for _, msg := range []string{"connection reset", "plain text", "[half"} {
		err := parseServerError(msg)
		var ce *CommandError
		if errors.As(err, &ce) {
			t.Errorf("parseServerError(%q) produced a CommandError: %+v", msg, ce)
		}
		if err == nil {
			t.Errorf("parseServerError(%q) = nil", msg)
		}
	}
}
