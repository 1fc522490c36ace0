package proto

import (
	"errors"
	"testing"
)

// ============================================================
// Classify Tests
// ============================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    Kind
		message string
	}{
		{
			name:  "success sentinel",
			input: "OK",
			kind:  KindOK,
		},
		{
			name:    "error sentinel",
			input:   "ACK [50@0] {play} song doesn't exist",
			kind:    KindACK,
			message: "[50@0] {play} song doesn't exist",
		},
		{
			name:    "error sentinel with empty message",
			input:   "ACK ",
			kind:    KindACK,
			message: "",
		},
		{
			name:  "plain data line",
			input: "volume: 80",
			kind:  KindData,
		},
		{
			name:  "data line that merely starts with OK",
			input: "OKish: value",
			kind:  KindData,
		},
		{
			name:  "bare ACK without trailing space is data",
			input: "ACK",
			kind:  KindData,
		},
		{
			name:  "empty line is data",
			input: "",
			kind:  KindData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Kind == KindACK && got.Message != tt.message {
				t.Errorf("Message = %q, want %q", got.Message, tt.message)
			}
			if got.Text != tt.input {
				t.Errorf("Text = %q, want %q", got.Text, tt.input)
			}
		})
	}
}

// ============================================================
// ParseHandshake Tests
// ============================================================

func TestParseHandshake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version string
		wantErr bool
	}{
		{
			name:    "valid banner",
			input:   "OK MPD 0.23.5",
			version: "0.23.5",
		},
		{
			name:    "valid banner with old version",
			input:   "OK MPD 0.12.2",
			version: "0.12.2",
		},
		{
			name:    "http server answered",
			input:   "HTTP/1.1 400 Bad Request",
			wantErr: true,
		},
		{
			name:    "plain OK is not a banner",
			input:   "OK",
			wantErr: true,
		},
		{
			name:    "banner without version",
			input:   "OK MPD ",
			wantErr: true,
		},
		{
			name:    "empty line",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHandshake(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrProtocolMismatch) {
					t.Errorf("error = %v, want ErrProtocolMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.version {
				t.Errorf("version = %q, want %q", got, tt.version)
			}
		})
	}
}

// ============================================================
// Field Splitting Tests
// ============================================================

func TestSplitField(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		field  string
		value  string
		wantOK bool
	}{
		{
			name:   "simple field",
			input:  "volume: 80",
			field:  "volume",
			value:  "80",
			wantOK: true,
		},
		{
			name:   "value containing separator splits once",
			input:  "Title: Love: The Album",
			field:  "Title",
			value:  "Love: The Album",
			wantOK: true,
		},
		{
			name:   "no separator",
			input:  "binary junk",
			field:  "binary junk",
			wantOK: false,
		},
		{
			name:   "colon without space is not a separator",
			input:  "a:b",
			field:  "a:b",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, value, ok := SplitField(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if field != tt.field || value != tt.value {
				t.Errorf("got (%q, %q), want (%q, %q)", field, value, tt.field, tt.value)
			}
		})
	}
}

func TestCanonicalField(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Artist", "artist"},
		{"Last-Modified", "last_modified"},
		{"file", "file"},
		{"AlbumArtistSort", "albumartistsort"},
	}

	for _, tt := range tests {
		if got := CanonicalField(tt.input); got != tt.want {
			t.Errorf("CanonicalField(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
