package session

import "sync"

// dispatcher delivers events to the owner in order without ever
// blocking the session event loop. emit appends to an unbounded
// pending list; a single delivery goroutine drains it into the outward
// channel, so a slow owner backs up the pending list, not the loop.
type dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []Event
	closed  bool

	out chan Event
}

func newDispatcher() *dispatcher {
	d := &dispatcher{out: make(chan Event, 16)}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// emit queues an event for delivery. Events emitted after close are
// dropped.
func (d *dispatcher) emit(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = append(d.pending, ev)
	d.cond.Signal()
}

// close stops the dispatcher. Already-emitted events are still
// delivered, then the outward channel is closed.
func (d *dispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cond.Signal()
}

func (d *dispatcher) run() {
	for {
		d.mu.Lock()
		for len(d.pending) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.pending) == 0 {
			// closed and fully drained
			d.mu.Unlock()
			close(d.out)
			return
		}
		ev := d.pending[0]
		d.pending[0] = Event{}
		d.pending = d.pending[1:]
		d.mu.Unlock()

		d.out <- ev
	}
}
