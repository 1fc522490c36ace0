package client

import (
	"testing"
	"time"

	"github.com/fluffle/mpdlink/internal/proto"
)

func TestDecodeStatusTimeFallback(t *testing.T) {
	// Pre-0.16 servers report "time: elapsed:total" without a
	// fractional "elapsed" field.
	st := decodeStatus([]string{
		"state", "pause",
		"time", "93:241",
	})
	if st.State != StatePause {
		t.Errorf("state = %q, want pause", st.State)
	}
	if st.Elapsed != 93*time.Second {
		t.Errorf("elapsed = %v, want 93s", st.Elapsed)
	}
}

func TestDecodeStatusMixedCaseKeys(t *testing.T) {
	st := decodeStatus([]string{
		"Volume", "55",
		"Updating_DB", "7",
	})
	if st.Volume != 55 {
		t.Errorf("volume = %d, want 55", st.Volume)
	}
	if st.Updating != 7 {
		t.Errorf("updating = %d, want 7", st.Updating)
	}
}

func TestDecodeStats(t *testing.T) {
	st := decodeStats([]string{
		"artists", "64",
		"albums", "128",
		"songs", "1024",
		"uptime", "3600",
		"playtime", "120",
		"db_playtime", "250000",
		"db_update", "1700000000",
	})
	if st.Artists != 64 || st.Albums != 128 || st.Songs != 1024 {
		t.Errorf("counts = %+v", st)
	}
	if st.Uptime != time.Hour {
		t.Errorf("uptime = %v, want 1h", st.Uptime)
	}
	if st.DBUpdate != time.Unix(1700000000, 0) {
		t.Errorf("db update = %v", st.DBUpdate)
	}
}

func TestDecodeSong(t *testing.T) {
	tests := []struct {
		name string
		rec  proto.Record
		want Song
	}{
		{
			name: "modern duration",
			rec: proto.Record{
				"file":     "a.flac",
				"title":    "Alpha",
				"artist":   "Someone",
				"album":    "Letters",
				"track":    "4/11",
				"duration": "255.341",
				"pos":      "3",
				"id":       "17",
			},
			want: Song{
				File: "a.flac", Title: "Alpha", Artist: "Someone",
				Album: "Letters", Track: 4,
				Duration: 255341 * time.Millisecond, Pos: 3, ID: 17,
			},
		},
		{
			name: "legacy time field",
			rec: proto.Record{
				"file": "b.mp3",
				"time": "200",
			},
			want: Song{File: "b.mp3", Duration: 200 * time.Second},
		},
		{
			name: "bare track number",
			rec: proto.Record{
				"file":  "c.mp3",
				"track": "9",
			},
			want: Song{File: "c.mp3", Track: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeSong(tt.rec); got != tt.want {
				t.Errorf("decodeSong = %+v, want %+v", got, tt.want)
			}
		})
	}
}
