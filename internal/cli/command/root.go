package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/cli/output"
	"github.com/fluffle/mpdlink/internal/client"
	"github.com/fluffle/mpdlink/internal/infra/buildinfo"
	"github.com/fluffle/mpdlink/internal/telemetry/logger"
	"github.com/fluffle/mpdlink/internal/telemetry/metric"
)

// connectTimeout bounds the dial-and-handshake phase of every command.
const connectTimeout = 30 * time.Second

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "mpdlink",
		Usage:   "command-line control for a Music Player Daemon server",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			StatusCommand(),
			CurrentCommand(),
			StatsCommand(),
			VersionCommand(),
			PlayCommand(),
			PauseCommand(),
			StopCommand(),
			NextCommand(),
			PrevCommand(),
			VolumeCommand(),
			RandomCommand(),
			RepeatCommand(),
			QueueCommand(),
			AddCommand(),
			ClearCommand(),
			SearchCommand(),
			WatchCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
		},
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"H"},
			Usage:   "MPD server host (or socket path with --network unix)",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "MPD server port",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "transport network: tcp or unix",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "MPD password",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table or json",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "show more columns in table output",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "log protocol traffic to stderr",
		},
	}
}

// flagOverrides maps the global flags that were actually set onto
// config keys, so flags beat both the file and the environment.
func flagOverrides(c *cli.Context) map[string]any {
	o := make(map[string]any)
	if c.IsSet("host") {
		o["mpd.host"] = c.String("host")
	}
	if c.IsSet("port") {
		o["mpd.port"] = c.Int("port")
	}
	if c.IsSet("network") {
		o["mpd.network"] = c.String("network")
	}
	if c.IsSet("password") {
		o["mpd.password"] = c.String("password")
	}
	if c.IsSet("output") {
		o["output"] = c.String("output")
	}
	return o
}

func loadConfig(c *cli.Context) (config.Config, error) {
	return config.Load(c.String("config"), flagOverrides(c))
}

func buildLogger(c *cli.Context, cfg config.Config) *slog.Logger {
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: errWriter(c),
	})
}

// connect loads configuration, dials the server and authenticates.
// The returned client must be Closed by the caller.
func connect(c *cli.Context, metrics *metric.Metrics) (*client.Client, config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, config.Config{}, err
	}

	cl := client.New(cfg.SessionConfig(), buildLogger(c, cfg), metrics)

	ctx, cancel := context.WithTimeout(c.Context, connectTimeout)
	defer cancel()

	spin := output.NewSpinner(errWriter(c), "connecting to "+cfg.MPD.Addr())
	spin.Start()
	err = cl.Connect(ctx)
	spin.Stop()
	if err != nil {
		cl.Close()
		return nil, config.Config{}, err
	}

	if cfg.MPD.Password != "" {
		if err := cl.Password(ctx, cfg.MPD.Password); err != nil {
			cl.Close()
			return nil, config.Config{}, fmt.Errorf("authenticate: %w", err)
		}
	}
	return cl, cfg, nil
}

// formatter builds the output formatter selected by config and flags.
func formatter(c *cli.Context, cfg config.Config) (output.Formatter, error) {
	return output.New(output.Format(cfg.Output), c.Bool("wide"))
}

// render runs one formatter over data into the app writer.
func render(c *cli.Context, cfg config.Config, data any) error {
	f, err := formatter(c, cfg)
	if err != nil {
		return err
	}
	return f.Format(outWriter(c), data)
}

func outWriter(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// actionTimeout bounds an individual command round trip after the
// connection is up.
const actionTimeout = 30 * time.Second

// withClient wraps a command body with the connect/close lifecycle.
func withClient(c *cli.Context, fn func(ctx context.Context, cl *client.Client, cfg config.Config) error) error {
	cl, cfg, err := connect(c, nil)
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx, cancel := context.WithTimeout(c.Context, actionTimeout)
	defer cancel()
	return fn(ctx, cl, cfg)
}
