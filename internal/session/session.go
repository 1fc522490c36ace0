package session

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fluffle/mpdlink/internal/proto"
	"github.com/fluffle/mpdlink/internal/telemetry/logger"
	"github.com/fluffle/mpdlink/internal/telemetry/metric"
)

var (
	// ErrShutdown is returned by Connect and Submit after Shutdown.
	ErrShutdown = errors.New("session: shut down")

	// ErrRequestReused is returned when a request is submitted twice.
	ErrRequestReused = errors.New("session: request already submitted")

	// ErrEmptyRequest is returned when a request carries no commands.
	ErrEmptyRequest = errors.New("session: request has no commands")
)

// connResetMsg completes requests that can no longer be answered
// because the connection they were sent on is gone.
const connResetMsg = "connection reset"

// Config holds the session configuration.
type Config struct {
	// Network is the transport network: "tcp" or "unix".
	Network string
	// Addr is host:port for tcp, or the socket path for unix.
	Addr string
	// MaxRetries is the connection attempt budget. It refills on every
	// successful handshake. Must be >= 1.
	MaxRetries int
	// RetryWait is the delay before a scheduled reconnect attempt.
	RetryWait time.Duration
	// DialTimeout bounds a single connection attempt (default: 5s).
	DialTimeout time.Duration
	// WriteTimeout bounds writing one request to the socket
	// (default: 30s).
	WriteTimeout time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Network:      "tcp",
		Addr:         "localhost:6600",
		MaxRetries:   3,
		RetryWait:    2 * time.Second,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Phase is the connection lifecycle phase.
type Phase int32

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseHandshakePending
	PhaseReady
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnecting:
		return "connecting"
	case PhaseHandshakePending:
		return "handshake_pending"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// lineEvent is one inbound line, or a terminal read error, from the
// reader goroutine of connection generation gen.
type lineEvent struct {
	gen  int
	text string
	err  error
}

// dialEvent is the outcome of the async dial of generation gen.
type dialEvent struct {
	gen  int
	conn net.Conn
	err  error
}

// Session is a pipelined client connection to an MPD server. Create
// with New, then Connect; outcomes arrive on the Events channel.
type Session struct {
	cfg     Config
	log     *slog.Logger
	metrics *metric.Metrics

	ops   chan func()
	lines chan lineEvent
	dials chan dialEvent
	disp  *dispatcher

	// stopped is closed when the event loop exits; producer goroutines
	// use it to bail out instead of blocking on a dead loop.
	stopped chan struct{}

	opMu     sync.Mutex
	opClosed bool

	phaseAtomic atomic.Int32

	// Everything below is owned by the event loop goroutine.
	autoReconnect bool
	retriesLeft   int
	q             queue
	acc           *proto.Accumulator
	conn          net.Conn
	gen           int
	retryTimer    <-chan time.Time
}

// New creates a session and starts its event loop. log may be nil
// (falls back to slog.Default) and metrics may be nil (disables
// collection).
func New(cfg Config, log *slog.Logger, metrics *metric.Metrics) *Session {
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryWait < 0 {
		cfg.RetryWait = 0
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Session{
		cfg:     cfg,
		log:     log.With("addr", cfg.Addr),
		metrics: metrics,
		ops:     make(chan func(), 16),
		lines:   make(chan lineEvent, 32),
		dials:   make(chan dialEvent, 1),
		disp:    newDispatcher(),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// Events returns the ordered notification channel. It is closed after
// Shutdown, once all pending events have been delivered. The channel
// has a single consumer: the owner.
func (s *Session) Events() <-chan Event { return s.disp.out }

// Phase returns the current connection phase.
func (s *Session) Phase() Phase {
	return Phase(s.phaseAtomic.Load())
}

// Connect starts connecting to the configured server. It returns
// immediately; the outcome arrives as a Connected or ConnectError
// event. Calling Connect while a connection is live or pending is a
// no-op.
func (s *Session) Connect() error {
	return s.post(func() { s.startConnect() })
}

// Submit queues a request and, when the connection is ready, writes
// its commands to the socket. Requests submitted while the connection
// is down stay queued and are written on the next successful
// handshake; requests already written to a connection that drops are
// failed with a connection reset error, never resent.
func (s *Session) Submit(r *Request) error {
	if r == nil || len(r.Commands) == 0 {
		return ErrEmptyRequest
	}
	if !r.enqueued.CompareAndSwap(false, true) {
		return ErrRequestReused
	}
	return s.post(func() { s.submit(r) })
}

// Shutdown tears down the transport and stops the session. Queued
// requests are failed, a final Disconnected event is delivered if a
// connection was live, and the Events channel is closed. Shutdown is
// idempotent and safe to call from any goroutine.
func (s *Session) Shutdown() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if s.opClosed {
		return
	}
	s.opClosed = true
	s.ops <- func() { s.shutdown() }
	close(s.ops)
}

// post hands an operation to the event loop, serializing it with
// inbound line processing.
func (s *Session) post(fn func()) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if s.opClosed {
		return ErrShutdown
	}
	s.ops <- fn
	return nil
}

// run is the event loop. It is the only goroutine that touches the
// phase machine, the request queue, and the accumulator.
func (s *Session) run() {
	defer func() {
		close(s.stopped)
		s.disp.close()
	}()

	for {
		select {
		case fn, ok := <-s.ops:
			if !ok {
				return
			}
			fn()
		case ev := <-s.lines:
			s.onLine(ev)
		case ev := <-s.dials:
			s.onDial(ev)
		case <-s.retryTimer:
			s.retryTimer = nil
			if s.Phase() == PhaseDisconnected && s.autoReconnect {
				s.dial()
			}
		}
	}
}

func (s *Session) setPhase(p Phase) {
	s.phaseAtomic.Store(int32(p))
}

// ------------------------------------------------------------
// Connection lifecycle
// ------------------------------------------------------------

func (s *Session) startConnect() {
	if s.Phase() != PhaseDisconnected {
		s.log.Warn("connect ignored", "phase", s.Phase().String())
		return
	}
	s.autoReconnect = true
	s.retriesLeft = s.cfg.MaxRetries
	s.dial()
}

// dial starts an asynchronous connection attempt for a fresh
// generation. Results from older generations are discarded.
func (s *Session) dial() {
	s.setPhase(PhaseConnecting)
	s.gen++
	gen := s.gen
	s.metrics.ConnectAttempt()
	s.log.Debug("dialing", "network", s.cfg.Network, "gen", gen)

	go func() {
		conn, err := net.DialTimeout(s.cfg.Network, s.cfg.Addr, s.cfg.DialTimeout)
		select {
		case s.dials <- dialEvent{gen: gen, conn: conn, err: err}:
		case <-s.stopped:
			if conn != nil {
				conn.Close()
			}
		}
	}()
}

func (s *Session) onDial(ev dialEvent) {
	if ev.gen != s.gen || s.Phase() != PhaseConnecting {
		// Stale attempt, superseded by a teardown or reconnect.
		if ev.conn != nil {
			ev.conn.Close()
		}
		return
	}
	if ev.err != nil {
		s.connectFailed(ev.err.Error())
		return
	}

	s.conn = ev.conn
	s.setPhase(PhaseHandshakePending)
	s.startReader(ev.conn, s.gen)
}

// startReader pumps inbound lines from conn into the event loop until
// the connection dies or the session stops.
func (s *Session) startReader(conn net.Conn, gen int) {
	go func() {
		sc := bufio.NewScanner(conn)
		// Listing responses can carry very long lines (file paths,
		// sticker payloads); raise the scanner limit well beyond them.
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for sc.Scan() {
			select {
			case s.lines <- lineEvent{gen: gen, text: sc.Text()}:
			case <-s.stopped:
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case s.lines <- lineEvent{gen: gen, err: err}:
		case <-s.stopped:
		}
	}()
}

// connectFailed handles a failed connection attempt: one unit of the
// retry budget is spent, and either another attempt is scheduled or
// the failure is reported as fatal.
func (s *Session) connectFailed(reason string) {
	s.metrics.ConnectFailure()
	s.setPhase(PhaseDisconnected)
	s.retriesLeft--

	if s.autoReconnect && s.retriesLeft > 0 {
		s.log.Warn("connect failed, retrying",
			"reason", reason,
			"retries_left", s.retriesLeft,
			"retry_wait", s.cfg.RetryWait,
		)
		s.disp.emit(Event{Kind: EventConnectErrorRetriable, Reason: reason})
		s.scheduleReconnect()
		return
	}

	s.log.Error("connect failed, giving up", "reason", reason)
	s.disp.emit(Event{Kind: EventConnectErrorFatal, Reason: reason})
	s.failQueued(connResetMsg)
}

func (s *Session) scheduleReconnect() {
	s.metrics.ReconnectScheduled()
	s.retryTimer = time.After(s.cfg.RetryWait)
}

// onLine processes one inbound event from the reader, strictly
// sequentially with ops and dial results.
func (s *Session) onLine(ev lineEvent) {
	if ev.gen != s.gen {
		// A reader for a connection that has already been torn down.
		return
	}
	if ev.err != nil {
		s.connectionLost(ev.err)
		return
	}

	s.metrics.LineRead()

	switch s.Phase() {
	case PhaseHandshakePending:
		s.onHandshake(ev.text)
	case PhaseReady:
		s.classify(ev.text)
	default:
		s.log.Warn("line in unexpected phase", "phase", s.Phase().String())
	}
}

// onHandshake validates the banner line. A valid banner makes the
// session ready and refills the retry budget; anything else means the
// peer is not an MPD server, which is never retriable.
func (s *Session) onHandshake(text string) {
	version, err := proto.ParseHandshake(text)
	if err != nil {
		s.log.Error("handshake failed", "reason", err.Error())
		s.autoReconnect = false
		s.teardown()
		s.setPhase(PhaseDisconnected)
		s.disp.emit(Event{Kind: EventConnectErrorFatal, Reason: err.Error()})
		s.failQueued(connResetMsg)
		return
	}

	s.setPhase(PhaseReady)
	s.retriesLeft = s.cfg.MaxRetries
	s.acc = nil
	s.log.Info("connected", "version", version)
	s.disp.emit(Event{Kind: EventConnected, Version: version})
	s.flushUnsent()
}

// classify routes one inbound line against the queue head. Responses
// arrive in submission order, so the head is by contract the request
// this line belongs to.
func (s *Session) classify(text string) {
	line := proto.Classify(text)
	switch line.Kind {
	case proto.KindOK:
		acc := s.acc
		s.acc = nil
		req := s.q.pop()
		if req == nil {
			s.log.Warn("success sentinel with empty queue")
			return
		}
		req.completeOK(acc)
		s.metrics.QueueDepth(s.q.len())
		s.metrics.RequestCompleted("ok", time.Since(req.submitted).Seconds())
		s.log.Debug("request completed", "request_id", req.ID, "entries", len(req.values)+len(req.records))
		s.disp.emit(Event{Kind: EventDataReady, Request: req})

	case proto.KindACK:
		// Error responses carry no data lines; the buffer is discarded
		// rather than attached.
		s.acc = nil
		req := s.q.pop()
		if req == nil {
			s.log.Warn("error sentinel with empty queue", "message", line.Message)
			return
		}
		req.completeError(line.Message)
		s.metrics.QueueDepth(s.q.len())
		s.metrics.RequestCompleted("error", time.Since(req.submitted).Seconds())
		s.log.Debug("request failed", "request_id", req.ID, "message", line.Message)
		s.disp.emit(Event{Kind: EventErrorReported, Request: req, Message: line.Message})

	case proto.KindData:
		req := s.q.head()
		if req == nil {
			s.log.Warn("data line with empty queue", "line", text)
			return
		}
		if s.acc == nil {
			s.acc = proto.NewAccumulator(req.Shape)
		}
		s.acc.Add(text)
	}
}

// connectionLost handles the death of an established or half-
// established connection.
func (s *Session) connectionLost(err error) {
	wasReady := s.Phase() == PhaseReady
	s.teardown()
	s.setPhase(PhaseDisconnected)
	s.acc = nil
	s.metrics.Disconnect()

	// Requests already on the wire can never be answered now. Queued
	// but unsent requests stay queued for the next connection.
	s.failSent(connResetMsg)

	if !wasReady {
		// Died waiting for the handshake: spend a retry unit like any
		// other failed connection attempt.
		s.connectFailed(err.Error())
		return
	}

	s.log.Warn("connection lost", "reason", err.Error())
	s.disp.emit(Event{Kind: EventDisconnected})
	if s.autoReconnect {
		// A drop from ready does not spend the retry budget; only
		// failed connection attempts do.
		s.scheduleReconnect()
	}
}

// teardown closes the transport and invalidates the current reader and
// any in-flight dial by bumping the generation.
func (s *Session) teardown() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.gen++
}

func (s *Session) shutdown() {
	s.autoReconnect = false
	wasReady := s.Phase() == PhaseReady
	hadConn := s.conn != nil

	s.teardown()
	s.setPhase(PhaseDisconnected)
	s.retryTimer = nil
	s.acc = nil
	s.failQueued(connResetMsg)

	if hadConn {
		s.metrics.Disconnect()
	}
	s.log.Info("session shut down")
	if wasReady {
		s.disp.emit(Event{Kind: EventDisconnected})
	}
}

// ------------------------------------------------------------
// Request submission
// ------------------------------------------------------------

func (s *Session) submit(r *Request) {
	r.submitted = time.Now()
	s.q.push(r)
	s.metrics.QueueDepth(s.q.len())
	s.log.Debug("request submitted",
		"request_id", r.ID,
		"shape", r.Shape.String(),
		"queued", s.q.len(),
	)
	if s.Phase() == PhaseReady {
		s.send(r)
	}
}

// send writes one request's command lines to the socket. A write
// failure is a connection loss, handled inline.
func (s *Session) send(r *Request) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		s.connectionLost(err)
		return false
	}

	bw := bufio.NewWriter(s.conn)
	for _, cmd := range proto.WrapList(r.Commands) {
		s.log.Debug("send", "request_id", r.ID, "command", logger.RedactCommand(cmd))
		if _, err := bw.WriteString(cmd + "\n"); err != nil {
			s.connectionLost(err)
			return false
		}
	}
	if err := bw.Flush(); err != nil {
		s.connectionLost(err)
		return false
	}
	r.sent = true
	return true
}

// flushUnsent writes every queued request that has not yet reached the
// wire, in queue order. Runs on every transition to ready.
func (s *Session) flushUnsent() {
	for _, r := range s.q.all() {
		if s.Phase() != PhaseReady {
			return
		}
		if r.sent {
			continue
		}
		if !s.send(r) {
			return
		}
	}
}

// failSent completes every request that has been written to the dead
// connection. Sent requests are a prefix of the queue, so this pops
// from the head.
func (s *Session) failSent(msg string) {
	for {
		head := s.q.head()
		if head == nil || !head.sent {
			break
		}
		s.q.pop()
		head.completeError(msg)
		s.metrics.RequestCompleted("error", time.Since(head.submitted).Seconds())
		s.disp.emit(Event{Kind: EventErrorReported, Request: head, Message: msg})
	}
	s.metrics.QueueDepth(s.q.len())
}

// failQueued completes every queued request, sent or not. Used when no
// further connection attempt will be made.
func (s *Session) failQueued(msg string) {
	for {
		req := s.q.pop()
		if req == nil {
			break
		}
		req.completeError(msg)
		s.metrics.RequestCompleted("error", time.Since(req.submitted).Seconds())
		s.disp.emit(Event{Kind: EventErrorReported, Request: req, Message: msg})
	}
	s.metrics.QueueDepth(0)
}
