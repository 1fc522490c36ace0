package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fluffle/mpdlink/internal/proto"
	"github.com/fluffle/mpdlink/internal/session"
	"github.com/fluffle/mpdlink/internal/telemetry/metric"
)

// Client wraps a session and exposes typed MPD operations. It is the
// single consumer of the session's event channel; connection state
// changes are mirrored into the client and forwarded on Notifications.
//
// A Client is safe for concurrent use.
type Client struct {
	sess *session.Session
	log  *slog.Logger

	mu        sync.Mutex
	connected bool
	version   string
	waiters   []chan error

	notify chan session.Event
}

// New creates a client and its underlying session. log may be nil;
// metrics may be nil to disable collection. No connection is made
// until Connect.
func New(cfg session.Config, log *slog.Logger, metrics *metric.Metrics) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		sess:   session.New(cfg, log, metrics),
		log:    log,
		notify: make(chan session.Event, 64),
	}
	go c.pump()
	return c
}

// Notifications returns the forwarded session events: connection state
// changes and request completions, in order. The channel is closed
// after Close. Events are dropped when the consumer lags behind the
// buffer; state-querying methods never depend on it.
func (c *Client) Notifications() <-chan session.Event { return c.notify }

// Connected reports whether a handshaken connection is currently live.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Version returns the protocol version from the most recent handshake,
// or "" before the first connection.
func (c *Client) Version() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// pump consumes session events, maintains connection state and
// completes Connect waiters.
func (c *Client) pump() {
	for ev := range c.sess.Events() {
		switch ev.Kind {
		case session.EventConnected:
			c.mu.Lock()
			c.connected = true
			c.version = ev.Version
			c.resolveWaiters(nil)
			c.mu.Unlock()

		case session.EventConnectErrorFatal:
			c.mu.Lock()
			c.connected = false
			c.resolveWaiters(errors.New("mpd: connect: " + ev.Reason))
			c.mu.Unlock()

		case session.EventDisconnected:
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
		}

		select {
		case c.notify <- ev:
		default:
			c.log.Warn("notification dropped", "event", ev.Kind.String())
		}
	}
	c.mu.Lock()
	c.resolveWaiters(session.ErrShutdown)
	c.mu.Unlock()
	close(c.notify)
}

// resolveWaiters must be called with mu held.
func (c *Client) resolveWaiters(err error) {
	for _, w := range c.waiters {
		w <- err
	}
	c.waiters = nil
}

// Connect establishes the connection, blocking until the handshake
// completes, the retry budget is exhausted, or ctx is cancelled.
// Retriable connect failures are not surfaced here; the session keeps
// trying until one outcome is final.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	w := make(chan error, 1)
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	if err := c.sess.Connect(); err != nil {
		return err
	}
	select {
	case err := <-w:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the client down. Pending requests are failed and the
// Notifications channel is closed once drained.
func (c *Client) Close() {
	c.sess.Shutdown()
}

// do submits one request and waits for its completion. On context
// cancellation the request stays with the session, which will complete
// it into the void.
func (c *Client) do(ctx context.Context, shape proto.Shape, commands ...string) (*session.Request, error) {
	req := session.NewRequest(shape, commands...)
	if err := c.sess.Submit(req); err != nil {
		return nil, err
	}
	select {
	case <-req.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if req.Failed() {
		return nil, parseServerError(req.Err())
	}
	return req, nil
}

// run executes a command whose response carries no data.
func (c *Client) run(ctx context.Context, commands ...string) error {
	_, err := c.do(ctx, proto.Raw, commands...)
	return err
}
