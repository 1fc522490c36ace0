// Package confloader loads layered configuration.
//
// It wraps koanf to merge configuration from YAML files, environment
// variables and in-memory maps (CLI flags), and unmarshals the merged
// tree into koanf-tagged structs.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (loaded as a map by the caller)
//  2. Environment variables (MPDLINK_ prefix)
//  3. Configuration file
//  4. Struct defaults
//
// A Watcher built on fsnotify reports config file changes so callers
// can reload settings such as the log level at runtime.
package confloader
