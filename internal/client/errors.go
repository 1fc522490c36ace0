package client

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotPlaying is returned by CurrentSong when no song is loaded.
var ErrNotPlaying = errors.New("client: no current song")

// CommandError is a structured server error. MPD reports errors as
//
//	[code@index] {command} message
//
// where index is the position of the failing command within a command
// list (zero for single commands).
type CommandError struct {
	// Code is the server's numeric error code.
	Code int
	// Index is the position of the failing command in the list.
	Index int
	// Command is the name of the failing command, if reported.
	Command string
	// Message is the human-readable error text.
	Message string
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("mpd: %s", e.Message)
	}
	return fmt.Sprintf("mpd: %s: %s", e.Command, e.Message)
}

// parseServerError turns a raw error message into a CommandError when
// it matches the server's error format, and a plain error otherwise.
func parseServerError(msg string) error {
	rest, ok := strings.CutPrefix(msg, "[")
	if !ok {
		return errors.New("mpd: " + msg)
	}
	codes, rest, ok := strings.Cut(rest, "] ")
	if !ok {
		return errors.New("mpd: " + msg)
	}

	ce := &CommandError{Message: rest}
	codeStr, idxStr, _ := strings.Cut(codes, "@")
	ce.Code, _ = strconv.Atoi(codeStr)
	ce.Index, _ = strconv.Atoi(idxStr)

	if cmd, ok := strings.CutPrefix(ce.Message, "{"); ok {
		if name, tail, ok := strings.Cut(cmd, "} "); ok {
			ce.Command = name
			ce.Message = tail
		} else if name, ok := strings.CutSuffix(cmd, "}"); ok {
			ce.Command = name
			ce.Message = ""
		}
	}
	return ce
}
