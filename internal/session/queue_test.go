package session

import (
	"testing"

	"github.com/fluffle/mpdlink/internal/proto"
)

func TestQueueOrder(t *testing.T) {
	var q queue
	a := NewRequest(proto.Raw, "a")
	b := NewRequest(proto.Raw, "b")
	c := NewRequest(proto.Raw, "c")

	if q.head() != nil || q.pop() != nil || q.len() != 0 {
		t.Fatal("empty queue not empty")
	}

	q.push(a)
	q.push(b)
	q.push(c)
	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	if q.head() != a {
		t.Fatal("head is not the first pushed request")
	}
	if q.pop() != a || q.pop() != b {
		t.Fatal("pop order does not match push order")
	}
	if q.len() != 1 || q.head() != c {
		t.Fatalf("after two pops: len = %d, head = %v", q.len(), q.head())
	}
}

func TestQueueSnapshot(t *testing.T) {
	var q queue
	a := NewRequest(proto.Raw, "a")
	b := NewRequest(proto.Raw, "b")
	q.push(a)
	q.push(b)

	snap := q.all()
	if len(snap) != 2 || snap[0] != a || snap[1] != b {
		t.Fatalf("snapshot = %v", snap)
	}

	// Mutating the queue must not alias into the snapshot.
	q.pop()
	if snap[0] != a {
		t.Fatal("snapshot mutated by pop")
	}
}
