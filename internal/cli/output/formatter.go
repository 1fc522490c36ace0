package output

import (
	"fmt"
	"io"
)

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter renders one result value to a writer.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// New returns the formatter for the given format name.
func New(format Format, wide bool) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatTable, "":
		return &TableFormatter{Wide: wide}, nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", format)
	}
}
