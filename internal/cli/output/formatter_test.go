package output

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  Format
		want    any
		wantErr bool
	}{
		{format: FormatTable, want: &TableFormatter{}},
		{format: FormatJSON, want: &JSONFormatter{}},
		{format: "", want: &TableFormatter{}},
		{format: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := New(tt.format, false)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q) succeeded, want error", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q): %v", tt.format, err)
			}
			switch tt.want.(type) {
			case *TableFormatter:
				if _, ok := f.(*TableFormatter); !ok {
					t.Errorf("New(%q) = %T, want *TableFormatter", tt.format, f)
				}
			case *JSONFormatter:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Errorf("New(%q) = %T, want *JSONFormatter", tt.format, f)
				}
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf strings.Builder
	f := &JSONFormatter{}
	if err := f.Format(&buf, map[string]int{"volume": 80}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["volume"] != 80 {
		t.Errorf("decoded = %v", decoded)
	}
}
