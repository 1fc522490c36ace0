package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders results as indented JSON, one document per
// call.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
