package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/client"
)

// statusView is the status table shape for terminal output.
type statusView struct {
	State    string
	Volume   int
	Elapsed  time.Duration
	Duration time.Duration
	Song     int
	Queue    int
	Repeat   bool
	Random   bool
	Bitrate  int    `table:"wide"`
	Error    string `table:"wide"`
}

func statusToView(st client.Status) statusView {
	return statusView{
		State:    string(st.State),
		Volume:   st.Volume,
		Elapsed:  st.Elapsed,
		Duration: st.Duration,
		Song:     st.Song,
		Queue:    st.PlaylistLength,
		Repeat:   st.Repeat,
		Random:   st.Random,
		Bitrate:  st.Bitrate,
		Error:    st.Error,
	}
}

// StatusCommand reports the player state.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show player status",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				st, err := cl.Status(ctx)
				if err != nil {
					return err
				}
				if cfg.Output == "json" {
					return render(c, cfg, st)
				}
				return render(c, cfg, statusToView(st))
			})
		},
	}
}

// CurrentCommand reports the song loaded in the player.
func CurrentCommand() *cli.Command {
	return &cli.Command{
		Name:    "current",
		Aliases: []string{"cur"},
		Usage:   "Show the current song",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				song, err := cl.CurrentSong(ctx)
				if err != nil {
					return err
				}
				return render(c, cfg, song)
			})
		},
	}
}

// StatsCommand reports server and database statistics.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show server statistics",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				st, err := cl.Stats(ctx)
				if err != nil {
					return err
				}
				return render(c, cfg, st)
			})
		},
	}
}

// VersionCommand reports the server's protocol version.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the server protocol version",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				fmt.Fprintf(outWriter(c), "MPD protocol %s\n", cl.Version())
				return nil
			})
		},
	}
}
