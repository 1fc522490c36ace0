// Package output renders command results for the terminal.
//
// Two formats are supported: an aligned text table (the default) and
// indented JSON for scripting. Structs and slices of structs are
// converted to tables reflectively, honoring `table:"-"` to hide a
// field and `table:"wide"` to show it only in wide mode. A small
// spinner covers interactive waits.
package output
