package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/client"
)

// SearchCommand queries the song database.
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the database by tag",
		ArgsUsage: "<tag> <what>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "exact",
				Usage: "match the tag value exactly instead of by substring",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("search takes a tag and a value, e.g. search artist Coltrane")
			}
			tag, what := c.Args().Get(0), c.Args().Get(1)
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				query := cl.Search
				if c.Bool("exact") {
					query = cl.Find
				}
				songs, err := query(ctx, tag, what)
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
