// Package session implements the resilient MPD client connection.
//
// This package owns the transport socket and everything that moves
// through it:
//
//   - session.go: connection lifecycle, reconnect policy, event loop
//   - request.go: pipelined request unit and completion
//   - queue.go: FIFO in-flight request queue
//   - event.go: lifecycle and completion notifications
//   - dispatch.go: ordered asynchronous event delivery
//
// Concurrency model: a single event-loop goroutine owns the phase
// state machine, the request queue, and the response accumulator. The
// transport reader, the async dialer, and callers of Connect, Submit
// and Shutdown feed that loop through channels; nothing else touches
// loop-owned state. Responses are correlated to requests purely by
// order: MPD answers pipelined requests strictly in submission order,
// and the classifier trusts this absolutely.
package session
