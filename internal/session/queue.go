package session

// queue is the FIFO list of in-flight requests. The head is always the
// request whose response is currently being classified. The only legal
// mutations are push-to-tail and pop-from-head; the order never
// changes once a request is queued.
type queue struct {
	reqs []*Request
}

// push appends a request to the tail.
func (q *queue) push(r *Request) {
	q.reqs = append(q.reqs, r)
}

// head returns the oldest in-flight request without removing it, or
// nil when the queue is empty.
func (q *queue) head() *Request {
	if len(q.reqs) == 0 {
		return nil
	}
	return q.reqs[0]
}

// pop removes and returns the head, or nil when the queue is empty.
func (q *queue) pop() *Request {
	if len(q.reqs) == 0 {
		return nil
	}
	r := q.reqs[0]
	q.reqs[0] = nil
	q.reqs = q.reqs[1:]
	return r
}

// len reports the number of queued requests.
func (q *queue) len() int { return len(q.reqs) }

// all returns a snapshot of the queue in order, head first.
func (q *queue) all() []*Request {
	out := make([]*Request, len(q.reqs))
	copy(out, q.reqs)
	return out
}
