package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a waiting message on one terminal line.
type Spinner struct {
	w       io.Writer
	message string
	frames  []string
	done    chan struct{}
	stop    sync.Once
}

// NewSpinner creates a spinner; call Start to animate it.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		done:    make(chan struct{}),
	}
}

// Start begins the animation on its own goroutine.
func (s *Spinner) Start() {
	go func() {
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-tick.C:
				fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call more than
// once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		fmt.Fprint(s.w, "\r\033[K")
	})
}

// Fail ends the animation with a failure line.
func (s *Spinner) Fail(message string) {
	s.stop.Do(func() {
		close(s.done)
		fmt.Fprintf(s.w, "\r\033[K✗ %s\n", message)
	})
}
