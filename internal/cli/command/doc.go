// Package command defines the mpdlink CLI commands.
//
// All commands are built on urfave/cli/v2:
//
//   - root.go: the application, global flags, connection helpers
//   - status.go: status, current, stats, version
//   - playback.go: play, pause, stop, next, prev, volume, random,
//     repeat
//   - queue.go: queue, add, clear
//   - search.go: search
//   - watch.go: the status polling loop
//
// Every command follows the same pattern: merge configuration, dial
// the server, run one or two typed client calls, format the result.
package command
