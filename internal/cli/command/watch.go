package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/fluffle/mpdlink/internal/cli/config"
	"github.com/fluffle/mpdlink/internal/client"
	"github.com/fluffle/mpdlink/internal/infra/confloader"
	"github.com/fluffle/mpdlink/internal/infra/shutdown"
	"github.com/fluffle/mpdlink/internal/telemetry/logger"
	"github.com/fluffle/mpdlink/internal/telemetry/metric"
)

// WatchCommand polls the player and prints state changes until
// interrupted.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll player status and print changes",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "poll interval",
				Value:   time.Second,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "serve Prometheus metrics on this address (e.g. :9090)",
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	var metrics *metric.Metrics
	if addr := c.String("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		metrics = metric.New(reg)
		srv := &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(errWriter(c), "metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
	}

	cl, cfg, err := connect(c, metrics)
	if err != nil {
		return err
	}
	defer cl.Close()

	// Long-running mode: pick up log level changes from the config
	// file without a restart.
	if stopWatch := watchLogLevel(c, cfg); stopWatch != nil {
		defer stopWatch()
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	h := shutdown.NewHandler(5 * time.Second)
	h.OnShutdown(func(context.Context) error {
		cancel()
		return nil
	})

	go func() {
		defer h.Trigger()
		watchLoop(ctx, c, cl, c.Duration("interval"))
	}()

	return h.Wait()
}

// watchLogLevel watches the config file and applies log level changes
// in place. Returns nil when no config file is in play.
func watchLogLevel(c *cli.Context, cfg config.Config) func() {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := confloader.NewWatcher(buildLogger(c, cfg))
	if err != nil || w.Watch(path) != nil {
		return nil
	}
	w.OnChange(func(string) {
		fresh, err := config.Load(path, flagOverrides(c))
		if err != nil {
			return
		}
		logger.SetLevel(fresh.Log.Level)
	})
	w.StartAsync()
	return func() { w.Stop() }
}

// watchLoop polls status until ctx ends, printing a line whenever the
// player state changes. The limiter paces polls even when individual
// requests return quickly or fail fast.
func watchLoop(ctx context.Context, c *cli.Context, cl *client.Client, interval time.Duration) {
	lim := rate.NewLimiter(rate.Every(interval), 1)
	last := ""
	for {
		if err := lim.Wait(ctx); err != nil {
			return
		}
		line, err := statusLine(ctx, cl)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			line = "error: " + err.Error()
		}
		if line != last {
			fmt.Fprintln(outWriter(c), line)
			last = line
		}
	}
}

func statusLine(ctx context.Context, cl *client.Client) (string, error) {
	st, err := cl.Status(ctx)
	if err != nil {
		return "", err
	}
	if st.State == client.StateStop {
		return fmt.Sprintf("[%s] queue of %d", st.State, st.PlaylistLength), nil
	}

	song, err := cl.CurrentSong(ctx)
	if errors.Is(err, client.ErrNotPlaying) {
		return fmt.Sprintf("[%s]", st.State), nil
	}
	if err != nil {
		return "", err
	}

	title := song.Title
	if title == "" {
		title = song.File
	}
	who := song.Artist
	if who == "" {
		who = "unknown"
	}
	return fmt.Sprintf("[%s] %s - %s (%s/%s) vol %d%%",
		st.State, who, title,
		clock(st.Elapsed), clock(st.Duration), st.Volume,
	), nil
}

func clock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
