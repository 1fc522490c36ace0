package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fluffle/mpdlink/internal/proto"
)

// ------------------------------------------------------------
// General
// ------------------------------------------------------------

// Ping checks connection liveness with a round trip to the server.
func (c *Client) Ping(ctx context.Context) error {
	return c.run(ctx, "ping")
}

// Password authenticates the connection. The password never appears in
// logs.
func (c *Client) Password(ctx context.Context, pw string) error {
	return c.run(ctx, "password "+proto.Quote(pw))
}

// UpdateDB triggers a database update for path, or the whole database
// when path is empty. It returns the job id assigned by the server.
func (c *Client) UpdateDB(ctx context.Context, path string) (int, error) {
	cmd := "update"
	if path != "" {
		cmd += " " + proto.Quote(path)
	}
	req, err := c.do(ctx, proto.SingleFieldStripped, cmd)
	if err != nil {
		return 0, err
	}
	vals := req.Values()
	if len(vals) == 0 {
		return 0, nil
	}
	return strconv.Atoi(vals[0])
}

// Status retrieves and decodes the player status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	req, err := c.do(ctx, proto.KeyValuePairs, "status")
	if err != nil {
		return Status{}, err
	}
	return decodeStatus(req.Values()), nil
}

// Stats retrieves and decodes the server statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	req, err := c.do(ctx, proto.KeyValuePairs, "stats")
	if err != nil {
		return Stats{}, err
	}
	return decodeStats(req.Values()), nil
}

// CurrentSong returns the song currently loaded in the player, or
// ErrNotPlaying when none is.
func (c *Client) CurrentSong(ctx context.Context) (Song, error) {
	req, err := c.do(ctx, proto.StructuredRecords, "currentsong")
	if err != nil {
		return Song{}, err
	}
	recs := req.Records()
	if len(recs) == 0 {
		return Song{}, ErrNotPlaying
	}
	return decodeSong(recs[0]), nil
}

// ------------------------------------------------------------
// Playback
// ------------------------------------------------------------

// Play starts playback at queue position pos, or resumes the current
// song when pos is negative.
func (c *Client) Play(ctx context.Context, pos int) error {
	if pos < 0 {
		return c.run(ctx, "play")
	}
	return c.run(ctx, fmt.Sprintf("play %d", pos))
}

// Pause pauses (true) or resumes (false) playback.
func (c *Client) Pause(ctx context.Context, on bool) error {
	return c.run(ctx, "pause "+boolArg(on))
}

// Stop stops playback.
func (c *Client) Stop(ctx context.Context) error {
	return c.run(ctx, "stop")
}

// Next skips to the next song in the queue.
func (c *Client) Next(ctx context.Context) error {
	return c.run(ctx, "next")
}

// Previous skips back to the previous song in the queue.
func (c *Client) Previous(ctx context.Context) error {
	return c.run(ctx, "previous")
}

// SetVolume sets the output volume, clamped by the server to 0..100.
func (c *Client) SetVolume(ctx context.Context, vol int) error {
	return c.run(ctx, fmt.Sprintf("setvol %d", vol))
}

// Seek seeks to secs seconds within the song at queue position pos.
func (c *Client) Seek(ctx context.Context, pos, secs int) error {
	return c.run(ctx, fmt.Sprintf("seek %d %d", pos, secs))
}

// Random enables or disables random playback order.
func (c *Client) Random(ctx context.Context, on bool) error {
	return c.run(ctx, "random "+boolArg(on))
}

// Repeat enables or disables queue repetition.
func (c *Client) Repeat(ctx context.Context, on bool) error {
	return c.run(ctx, "repeat "+boolArg(on))
}

// ------------------------------------------------------------
// Queue and stored playlists
// ------------------------------------------------------------

// PlaylistInfo lists the songs in the play queue.
func (c *Client) PlaylistInfo(ctx context.Context) ([]Song, error) {
	req, err := c.do(ctx, proto.StructuredRecords, "playlistinfo")
	if err != nil {
		return nil, err
	}
	return decodeSongs(req.Records()), nil
}

// Add appends the song or directory at uri to the play queue.
func (c *Client) Add(ctx context.Context, uri string) error {
	return c.run(ctx, "add "+proto.Quote(uri))
}

// Delete removes the song at queue position pos.
func (c *Client) Delete(ctx context.Context, pos int) error {
	return c.run(ctx, fmt.Sprintf("delete %d", pos))
}

// Clear empties the play queue.
func (c *Client) Clear(ctx context.Context) error {
	return c.run(ctx, "clear")
}

// Shuffle reorders the play queue randomly.
func (c *Client) Shuffle(ctx context.Context) error {
	return c.run(ctx, "shuffle")
}

// Load appends the stored playlist name to the play queue.
func (c *Client) Load(ctx context.Context, name string) error {
	return c.run(ctx, "load "+proto.Quote(name))
}

// Save stores the play queue as playlist name.
func (c *Client) Save(ctx context.Context, name string) error {
	return c.run(ctx, "save "+proto.Quote(name))
}

// Replace clears the queue, loads uri and starts playback, as one
// atomic command list.
func (c *Client) Replace(ctx context.Context, uri string) error {
	return c.run(ctx,
		"clear",
		"add "+proto.Quote(uri),
		"play",
	)
}

// ------------------------------------------------------------
// Collection
// ------------------------------------------------------------

// Find returns database songs whose tag matches what exactly.
func (c *Client) Find(ctx context.Context, tag, what string) ([]Song, error) {
	return c.songQuery(ctx, "find", tag, what)
}

// Search returns database songs whose tag contains what, matched
// case-insensitively.
func (c *Client) Search(ctx context.Context, tag, what string) ([]Song, error) {
	return c.songQuery(ctx, "search", tag, what)
}

func (c *Client) songQuery(ctx context.Context, verb, tag, what string) ([]Song, error) {
	cmd := fmt.Sprintf("%s %s %s", verb, proto.Quote(tag), proto.Quote(what))
	req, err := c.do(ctx, proto.StructuredRecords, cmd)
	if err != nil {
		return nil, err
	}
	return decodeSongs(req.Records()), nil
}

// ListAll lists every song file under path, or the whole database when
// path is empty.
func (c *Client) ListAll(ctx context.Context, path string) ([]string, error) {
	cmd := "listall"
	if path != "" {
		cmd += " " + proto.Quote(path)
	}
	req, err := c.do(ctx, proto.SingleFieldStripped, cmd)
	if err != nil {
		return nil, err
	}
	return req.Values(), nil
}

func boolArg(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
