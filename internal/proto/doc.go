// Package proto implements the MPD wire protocol primitives.
//
// This package covers the framing layer only: it classifies inbound
// lines, parses the connection handshake, frames outbound command
// lists, and accumulates response data lines into per-request results.
// It does not interpret the semantics of individual MPD commands.
//
//   - line.go: inbound line classification and handshake parsing
//   - command.go: outbound command-list framing and argument quoting
//   - shape.go: output shapes and response accumulation
//
// Everything here is pure: no IO, no goroutines, no shared state.
package proto
