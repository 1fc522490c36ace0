// Package config defines the CLI configuration.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/fluffle/mpdlink/internal/session"
)

// Config is the full CLI configuration tree, merged from the config
// file, MPDLINK_ environment variables and command-line flags.
type Config struct {
	MPD    MPDConfig `koanf:"mpd"`
	Log    LogConfig `koanf:"log"`
	Output string    `koanf:"output"`
}

// MPDConfig holds the server connection settings.
type MPDConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Network  string `koanf:"network"`
	Password string `koanf:"password"`

	Retries   int           `koanf:"retries"`
	RetryWait time.Duration `koanf:"retry_wait"`
	Timeout   time.Duration `koanf:"timeout"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MPD: MPDConfig{
			Host:      "localhost",
			Port:      6600,
			Network:   "tcp",
			Retries:   3,
			RetryWait: 2 * time.Second,
			Timeout:   5 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: "table",
	}
}

// Addr returns the dial address: host:port for tcp, the socket path
// for unix.
func (m MPDConfig) Addr() string {
	if m.Network == "unix" {
		return m.Host
	}
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

// Verify checks the merged configuration for values no command could
// work with.
func (c Config) Verify() error {
	switch c.MPD.Network {
	case "tcp", "unix":
	default:
		return fmt.Errorf("config: network must be tcp or unix, got %q", c.MPD.Network)
	}
	if c.MPD.Network == "tcp" && (c.MPD.Port < 1 || c.MPD.Port > 65535) {
		return fmt.Errorf("config: port %d out of range", c.MPD.Port)
	}
	if c.MPD.Host == "" {
		return fmt.Errorf("config: host must not be empty")
	}
	if c.MPD.Retries < 1 {
		return fmt.Errorf("config: retries must be at least 1, got %d", c.MPD.Retries)
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("config: output must be table or json, got %q", c.Output)
	}
	return nil
}

// SessionConfig maps the connection settings onto a session config.
func (c Config) SessionConfig() session.Config {
	return session.Config{
		Network:     c.MPD.Network,
		Addr:        c.MPD.Addr(),
		MaxRetries:  c.MPD.Retries,
		RetryWait:   c.MPD.RetryWait,
		DialTimeout: c.MPD.Timeout,
	}
}
