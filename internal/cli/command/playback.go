package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/client"
)

// PlayCommand starts or resumes playback.
func PlayCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Start playback, optionally at a queue position",
		ArgsUsage: "[pos]",
		Action: func(c *cli.Context) error {
			pos := -1
			if c.Args().Len() > 0 {
				n, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("bad queue position %q", c.Args().First())
				}
				pos = n
			}
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Play(ctx, pos)
			})
		},
	}
}

// PauseCommand pauses or resumes playback.
func PauseCommand() *cli.Command {
	return &cli.Command{
		Name:  "pause",
		Usage: "Pause playback (--resume to resume)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "resume",
				Usage: "resume instead of pausing",
			},
		},
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Pause(ctx, !c.Bool("resume"))
			})
		},
	}
}

// StopCommand stops playback.
func StopCommand() *cli.Command {
	return &cli.Command{
		Name:  "stop",
		Usage: "Stop playback",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Stop(ctx)
			})
		},
	}
}

// NextCommand skips to the next song.
func NextCommand() *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Skip to the next song",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Next(ctx)
			})
		},
	}
}

// PrevCommand skips to the previous song.
func PrevCommand() *cli.Command {
	return &cli.Command{
		Name:    "prev",
		Aliases: []string{"previous"},
		Usage:   "Skip to the previous song",
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.Previous(ctx)
			})
		},
	}
}

// VolumeCommand sets the output volume.
func VolumeCommand() *cli.Command {
	return &cli.Command{
		Name:      "volume",
		Aliases:   []string{"vol"},
		Usage:     "Set the volume (0-100)",
		ArgsUsage: "<n>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("volume takes exactly one argument")
			}
			vol, err := strconv.Atoi(c.Args().First())
			if err != nil || vol < 0 || vol > 100 {
				return fmt.Errorf("volume must be 0-100, got %q", c.Args().First())
			}
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return cl.SetVolume(ctx, vol)
			})
		},
	}
}

// RandomCommand toggles random playback order.
func RandomCommand() *cli.Command {
	return onOffCommand("random", "Set random playback order", (*client.Client).Random)
}

// RepeatCommand toggles queue repetition.
func RepeatCommand() *cli.Command {
	return onOffCommand("repeat", "Set queue repetition", (*client.Client).Repeat)
}

func onOffCommand(name, usage string, set func(*client.Client, context.Context, bool) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "on|off",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%s takes exactly one argument: on or off", name)
			}
			var on bool
			switch c.Args().First() {
			case "on", "1":
				on = true
			case "off", "0":
			default:
				return fmt.Errorf("%s argument must be on or off, got %q", name, c.Args().First())
			}
			return withClient(c, func(ctx context.Context, cl *client.Client, cfg config.Config) error {
				return set(cl, ctx, on)
			})
		},
	}
}
