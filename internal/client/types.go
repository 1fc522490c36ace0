package client

import (
	"math"
	"strconv"
	"time"

	"github.com/fluffle/mpdlink/internal/proto"
)

// PlayState is the player state reported by the server.
type PlayState string

const (
	StatePlay  PlayState = "play"
	StateStop  PlayState = "stop"
	StatePause PlayState = "pause"
)

// Status is the decoded player status.
type Status struct {
	Volume         int
	Repeat         bool
	Random         bool
	Single         bool
	Consume        bool
	Playlist       int
	PlaylistLength int
	State          PlayState
	Song           int
	SongID         int
	NextSong       int
	NextSongID     int
	Elapsed        time.Duration
	Duration       time.Duration
	Bitrate        int
	Updating       int
	Error          string
}

// Stats is the decoded database and server statistics.
type Stats struct {
	Artists    int
	Albums     int
	Songs      int
	Uptime     time.Duration
	Playtime   time.Duration
	DBPlaytime time.Duration
	DBUpdate   time.Time
}

// Song is one song entry from the database or the queue. Fields the
// server did not report are zero.
type Song struct {
	File     string
	Title    string
	Artist   string
	Album    string
	Genre    string
	Date     string
	Track    int
	Duration time.Duration
	Pos      int
	ID       int
}

// fields wraps a canonical-key lookup over a decoded response.
type fields map[string]string

// pairFields folds the flat key/value entries of a KeyValuePairs
// response into a lookup table with canonical keys. Repeated keys keep
// the last value.
func pairFields(values []string) fields {
	f := make(fields, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		f[proto.CanonicalField(values[i])] = values[i+1]
	}
	return f
}

func (f fields) str(key string) string { return f[key] }

func (f fields) int(key string) int {
	n, _ := strconv.Atoi(f[key])
	return n
}

func (f fields) bool(key string) bool { return f[key] == "1" }

// seconds decodes a duration reported in (possibly fractional)
// seconds. The server reports at most millisecond precision, so the
// value is rounded to milliseconds to shed float noise.
func (f fields) seconds(key string) time.Duration {
	v, err := strconv.ParseFloat(f[key], 64)
	if err != nil {
		return 0
	}
	return time.Duration(math.Round(v*1000)) * time.Millisecond
}

func decodeStatus(values []string) Status {
	f := pairFields(values)
	st := Status{
		Volume:         f.int("volume"),
		Repeat:         f.bool("repeat"),
		Random:         f.bool("random"),
		Single:         f.bool("single"),
		Consume:        f.bool("consume"),
		Playlist:       f.int("playlist"),
		PlaylistLength: f.int("playlistlength"),
		State:          PlayState(f.str("state")),
		Song:           f.int("song"),
		SongID:         f.int("songid"),
		NextSong:       f.int("nextsong"),
		NextSongID:     f.int("nextsongid"),
		Elapsed:        f.seconds("elapsed"),
		Duration:       f.seconds("duration"),
		Bitrate:        f.int("bitrate"),
		Updating:       f.int("updating_db"),
		Error:          f.str("error"),
	}
	if st.Elapsed == 0 {
		// Older servers report "time: elapsed:total" instead.
		if t, _, ok := cutColon(f.str("time")); ok {
			if n, err := strconv.Atoi(t); err == nil {
				st.Elapsed = time.Duration(n) * time.Second
			}
		}
	}
	return st
}

func cutColon(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func decodeStats(values []string) Stats {
	f := pairFields(values)
	st := Stats{
		Artists:    f.int("artists"),
		Albums:     f.int("albums"),
		Songs:      f.int("songs"),
		Uptime:     f.seconds("uptime"),
		Playtime:   f.seconds("playtime"),
		DBPlaytime: f.seconds("db_playtime"),
	}
	if n := f.int("db_update"); n > 0 {
		st.DBUpdate = time.Unix(int64(n), 0)
	}
	return st
}

func decodeSong(rec proto.Record) Song {
	f := fields(rec)
	s := Song{
		File:     f.str("file"),
		Title:    f.str("title"),
		Artist:   f.str("artist"),
		Album:    f.str("album"),
		Genre:    f.str("genre"),
		Date:     f.str("date"),
		Duration: f.seconds("duration"),
		Pos:      f.int("pos"),
		ID:       f.int("id"),
	}
	if t, _, _ := cutColon(f.str("track")); t != "" {
		s.Track, _ = strconv.Atoi(t)
	}
	if s.Duration == 0 {
		s.Duration = f.seconds("time")
	}
	return s
}

func decodeSongs(recs []proto.Record) []Song {
	songs := make([]Song, 0, len(recs))
	for _, rec := range recs {
		songs = append(songs, decodeSong(rec))
	}
	return songs
}
