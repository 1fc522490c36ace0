package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/client"
)

// songRow is the queue and search table shape.
type songRow struct {
	Pos      int
	Title    string
	Artist   string
	Time     time.Duration
	Album    string `table:"wide"`
	File     string `table:"wide"`
}

func songRows(songs []client.Song) []songRow {
	rows := make([]songRow, 0, len(songs))
	for _, s := range songs {
		title := s.Title
		if title == "" {
			title = s.File
		}
		rows = append(rows, songRow{
			Pos:    s.Pos,
			Title:  title,
			Artist: s.Artist,
			Time:   s.Duration,
			Album:  s.Album,
			File:   s.File,
		})
	}
	return rows
}

// QueueCommand lists the play queue.
func QueueCommand() *cli.Command {
	return &cli.Command{
		Name:    "queue",
		Aliases: []string{"q"},
		Usage:   "List the play queue",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				songs, err := cl.PlaylistInfo(ctx)
				if err != nil {
					return err
				}
				if cfg.Output == "json" {
					return render(c, cfg, songs)
				}
				return render(c, cfg, songRows(songs))
			})
		},
	}
}

// AddCommand appends songs or directories to the queue.
func AddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add songs or directories to the queue",
		ArgsUsage: "<uri>...",
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("add takes at least one uri")
			}
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				for _, uri := range c.Args().Slice() {
					if err := cl.Add(ctx, uri); err != nil {
						return fmt.Errorf("add %s: %w", uri, err)
					}
				}
				return nil
			})
		},
	}
}

// ClearCommand empties the queue.
func ClearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Clear the play queue",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Clear(ctx)
			})
		},
	}
}
