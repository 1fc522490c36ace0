package proto

import (
	"errors"
	"fmt"
	"strings"
)

// Wire-format constants. These are bit-exact per the MPD protocol;
// changing any of them breaks interoperability.
const (
	// okLine terminates a successful response.
	okLine = "OK"

	// ackPrefix starts an error sentinel; the remainder of the line is
	// the server's error message.
	ackPrefix = "ACK "

	// handshakePrefix starts the banner MPD sends immediately after the
	// transport connects, followed by the protocol version.
	handshakePrefix = "OK MPD "

	// fieldSep separates field name from value on a data line. The split
	// is always on the first occurrence.
	fieldSep = ": "
)

// ErrProtocolMismatch indicates the first line after connect was not an
// MPD handshake banner. The peer is not an MPD server; reconnecting
// will not help.
var ErrProtocolMismatch = errors.New("proto: peer did not identify as MPD")

// Kind identifies the category of an inbound line.
type Kind int

const (
	// KindData is a response payload line.
	KindData Kind = iota

	// KindOK is the success sentinel terminating a response.
	KindOK

	// KindACK is the error sentinel terminating a response.
	KindACK
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindOK:
		return "ok"
	case KindACK:
		return "ack"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Line is a classified inbound line.
type Line struct {
	Kind Kind

	// Text is the raw line, preserved verbatim for data lines.
	Text string

	// Message is the server's error message, set only for KindACK.
	Message string
}

// Classify decides the category of a single inbound line. It is the
// only place line categories are decided; callers switch on the result
// rather than re-matching prefixes.
func Classify(raw string) Line {
	switch {
	case raw == okLine:
		return Line{Kind: KindOK, Text: raw}
	case strings.HasPrefix(raw, ackPrefix):
		return Line{Kind: KindACK, Text: raw, Message: raw[len(ackPrefix):]}
	default:
		return Line{Kind: KindData, Text: raw}
	}
}

// ParseHandshake parses the banner line MPD sends on connect and
// returns the advertised protocol version.
//
// Any line that does not start with "OK MPD " is a protocol mismatch:
// whatever answered the socket is not an MPD server, and the error is
// not retriable.
func ParseHandshake(raw string) (string, error) {
	if !strings.HasPrefix(raw, handshakePrefix) {
		return "", fmt.Errorf("%w: got %q", ErrProtocolMismatch, raw)
	}
	version := strings.TrimSpace(raw[len(handshakePrefix):])
	if version == "" {
		return "", fmt.Errorf("%w: banner carries no version", ErrProtocolMismatch)
	}
	return version, nil
}

// SplitField splits a data line into field name and value on the first
// ": " occurrence. ok is false when the line carries no separator.
func SplitField(raw string) (field, value string, ok bool) {
	return strings.Cut(raw, fieldSep)
}

// CanonicalField normalizes a field name for record keys: lower-cased,
// with dashes folded to underscores ("Last-Modified" -> "last_modified").
func CanonicalField(field string) string {
	field = strings.ToLower(field)
	return strings.ReplaceAll(field, "-", "_")
}
