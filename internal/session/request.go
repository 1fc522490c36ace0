package session

import (
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fluffle/mpdlink/internal/proto"
)

// Request is one pipelined unit of work: the command lines to send and
// the declared shape of the response. A request is created by the
// owner, submitted exactly once, and owned by the session from
// submission until completion.
//
// Completion is signalled by closing the Done channel. Result
// accessors are only valid after Done is closed; before that the
// session mutates the request freely from its event loop.
type Request struct {
	// ID tags the request in logs and metrics. Assigned at creation.
	ID string

	// Commands are the fully formed command lines to send. The session
	// performs no quoting or escaping; multi-command requests are
	// wrapped in command-list markers on the wire.
	Commands []string

	// Shape declares how response data lines are accumulated.
	Shape proto.Shape

	enqueued atomic.Bool

	// Loop-owned state. Guarded by the happens-before edge of
	// close(done): written only by the event loop, read by owners only
	// after Done is closed.
	values    []string
	records   []proto.Record
	errMsg    string
	failed    bool
	sent      bool
	submitted time.Time

	done chan struct{}
}

// NewRequest creates a request for the given shape and command lines.
func NewRequest(shape proto.Shape, commands ...string) *Request {
	return &Request{
		ID:       ulid.Make().String(),
		Commands: commands,
		Shape:    shape,
		done:     make(chan struct{}),
	}
}

// Done returns a channel closed when the request completes, with
// either a result or an error.
func (r *Request) Done() <-chan struct{} { return r.done }

// Failed reports whether the request completed with an error. Valid
// only after Done is closed.
func (r *Request) Failed() bool { return r.failed }

// Err returns the server's error message for a failed request, or ""
// for a successful one. Valid only after Done is closed.
func (r *Request) Err() string { return r.errMsg }

// Values returns the accumulated flat result values. Valid only after
// Done is closed; nil for StructuredRecords requests.
func (r *Request) Values() []string { return r.values }

// Records returns the accumulated records for a StructuredRecords
// request. Valid only after Done is closed.
func (r *Request) Records() []proto.Record { return r.records }

// completeOK finishes the request with the accumulated result. acc may
// be nil for responses that carried no data lines. Called only from
// the event loop, exactly once per request.
func (r *Request) completeOK(acc *proto.Accumulator) {
	if acc != nil {
		r.values = acc.Values()
		r.records = acc.Records()
	}
	close(r.done)
}

// completeError finishes the request with an error message. Called
// only from the event loop, exactly once per request.
func (r *Request) completeError(msg string) {
	r.failed = true
	r.errMsg = msg
	close(r.done)
}
