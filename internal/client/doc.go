// Package client is the typed facade over a session.Session.
//
// It maps MPD command groups onto Go methods: playback control, queue
// manipulation, collection queries and server introspection. Each
// method builds the command lines, declares the response shape,
// submits a request to the session, and decodes the accumulated
// result into typed values.
//
//   - client.go: Client construction, connection handling, request
//     submission
//   - types.go: Status, Stats and Song result types and their decoders
//   - commands.go: the typed MPD operations
//   - errors.go: server error parsing
//
// All blocking methods take a context and return as soon as the
// context is cancelled; the underlying request stays queued and is
// completed or failed by the session on its own schedule.
package client
