package proto

import (
	"reflect"
	"testing"
)

// ============================================================
// Accumulator Tests - Flat Shapes
// ============================================================

func TestAccumulator_FlatShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		lines []string
		want  []string
	}{
		{
			name:  "raw passes lines through unchanged",
			shape: Raw,
			lines: []string{"volume: 80", "unstructured text", ""},
			want:  []string{"volume: 80", "unstructured text", ""},
		},
		{
			name:  "key value pairs yields field then value",
			shape: KeyValuePairs,
			lines: []string{"volume: 80"},
			want:  []string{"volume", "80"},
		},
		{
			name:  "key value pairs preserves order across lines",
			shape: KeyValuePairs,
			lines: []string{"repeat: 0", "random: 1"},
			want:  []string{"repeat", "0", "random", "1"},
		},
		{
			name:  "single field stripped keeps only values",
			shape: SingleFieldStripped,
			lines: []string{"volume: 80", "state: play"},
			want:  []string{"80", "play"},
		},
		{
			name:  "value with embedded separator splits once",
			shape: KeyValuePairs,
			lines: []string{"Title: Love: The Album"},
			want:  []string{"Title", "Love: The Album"},
		},
		{
			name:  "line without separator becomes field with empty value",
			shape: KeyValuePairs,
			lines: []string{"garbage"},
			want:  []string{"garbage", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator(tt.shape)
			for _, line := range tt.lines {
				acc.Add(line)
			}
			if got := acc.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
			if acc.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", acc.Len(), len(tt.want))
			}
		})
	}
}

// ============================================================
// Accumulator Tests - Structured Records
// ============================================================

func TestAccumulator_StructuredRecords(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Record
	}{
		{
			name:  "two start fields open two records",
			lines: []string{"file: a.ogg", "file: b.ogg"},
			want: []Record{
				{"file": "a.ogg"},
				{"file": "b.ogg"},
			},
		},
		{
			name:  "follow-up fields attach to the open record",
			lines: []string{"file: a.ogg", "Time: 120"},
			want: []Record{
				{"file": "a.ogg", "time": "120"},
			},
		},
		{
			name: "mixed entity types",
			lines: []string{
				"directory: Albums",
				"playlist: party",
				"file: a.ogg",
				"Artist: Foo",
				"Title: Bar",
			},
			want: []Record{
				{"directory": "Albums"},
				{"playlist": "party"},
				{"file": "a.ogg", "artist": "Foo", "title": "Bar"},
			},
		},
		{
			name:  "field names are canonicalized",
			lines: []string{"file: a.ogg", "Last-Modified: 2024-01-01"},
			want: []Record{
				{"file": "a.ogg", "last_modified": "2024-01-01"},
			},
		},
		{
			name:  "field before any record opens an empty record",
			lines: []string{"Artist: Foo", "Title: Bar"},
			want: []Record{
				{"artist": "Foo", "title": "Bar"},
			},
		},
		{
			name:  "no lines yields no records",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator(StructuredRecords)
			for _, line := range tt.lines {
				acc.Add(line)
			}
			if got := acc.Records(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Records() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Command Framing Tests
// ============================================================

func TestWrapList(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		want     []string
	}{
		{
			name:     "single command is not wrapped",
			commands: []string{"status"},
			want:     []string{"status"},
		},
		{
			name:     "multiple commands are wrapped",
			commands: []string{"stop", "clear"},
			want:     []string{"command_list_begin", "stop", "clear", "command_list_end"},
		},
		{
			name:     "empty input stays empty",
			commands: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapList(tt.commands)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapList_DoesNotAliasInput(t *testing.T) {
	in := []string{"status"}
	out := WrapList(in)
	out[0] = "mutated"
	if in[0] != "status" {
		t.Error("WrapList returned a slice aliasing its input")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{"with space", `"with space"`},
		{`has "quotes"`, `"has \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := Quote(tt.input); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
