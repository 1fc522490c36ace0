package session

import "fmt"

// EventKind identifies a session notification.
type EventKind int

const (
	// EventConnected fires once per successful handshake. Version
	// carries the protocol version the server advertised.
	EventConnected EventKind = iota

	// EventConnectErrorRetriable fires when a connection attempt fails
	// and another attempt is scheduled. Reason carries the cause.
	EventConnectErrorRetriable

	// EventConnectErrorFatal fires when a connection attempt fails and
	// no further attempt will be made: either the retry budget is
	// exhausted or the peer is not an MPD server.
	EventConnectErrorFatal

	// EventDisconnected fires when an established connection is lost
	// or torn down.
	EventDisconnected

	// EventDataReady fires when a request completes successfully.
	// Request carries the completed request with its result attached.
	EventDataReady

	// EventErrorReported fires when a request completes with an error.
	// Message carries the error text.
	EventErrorReported
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventConnectErrorRetriable:
		return "connect_error_retriable"
	case EventConnectErrorFatal:
		return "connect_error_fatal"
	case EventDisconnected:
		return "disconnected"
	case EventDataReady:
		return "data_ready"
	case EventErrorReported:
		return "error_reported"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one asynchronous session notification. Events are delivered
// in exactly the order the underlying occurrences happened; no event
// fires more than once per occurrence.
type Event struct {
	Kind EventKind

	// Version is set for EventConnected.
	Version string

	// Reason is set for the connect error events.
	Reason string

	// Request is set for EventDataReady and EventErrorReported.
	Request *Request

	// Message is set for EventErrorReported.
	Message string
}
