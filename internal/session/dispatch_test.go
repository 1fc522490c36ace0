package session

import (
	"testing"
	"time"
)

func TestDispatcherOrderAndClose(t *testing.T) {
	d := newDispatcher()
	for i := 0; i < 100; i++ {
		d.emit(Event{Kind: EventDataReady, Message: string(rune('a' + i%26))})
	}
	d.close()

	got := 0
	for ev := range d.out {
		if want := string(rune('a' + got%26)); ev.Message != want {
			t.Fatalf("event %d message = %q, want %q", got, ev.Message, want)
		}
		got++
	}
	if got != 100 {
		t.Fatalf("delivered %d events, want 100", got)
	}
}

func TestDispatcherNeverBlocksEmitter(t *testing.T) {
	d := newDispatcher()
	defer d.close()

	// Nobody reads out; emits far beyond the channel capacity must
	// still return promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			d.emit(Event{Kind: EventDataReady})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked with a slow consumer")
	}
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	d := newDispatcher()
	d.emit(Event{Kind: EventConnected})
	d.close()
	d.emit(Event{Kind: EventDisconnected})

	var got []EventKind
	for ev := range d.out {
		got = append(got, ev.Kind)
	}
	if len(got) != 1 || got[0] != EventConnected {
		t.Fatalf("delivered %v, want only the pre-close event", got)
	}
}
