package progress

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrChannelFull is returned by a ChannelObserver whose consumer has
// fallen too far behind.
var ErrChannelFull = errors.New("observer channel full")

// WriterObserver writes each event as one line of plain text, suitable
// for a terminal or a streaming HTTP response.
type WriterObserver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterObserver wraps w as an observer.
func NewWriterObserver(w io.Writer) *WriterObserver {
	return &WriterObserver{w: w}
}

// Notify writes the event; a write error marks the observer broken.
// The job id is included so lines from concurrent jobs stay readable
// on a shared feed.
func (o *WriterObserver) Notify(ev Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var err error
	if ev.JobID != "" {
		_, err = fmt.Fprintf(o.w, "[%s] [%s] %s\n", ev.Time.Format("15:04:05"), ev.JobID, ev.Message)
	} else {
		_, err = fmt.Fprintf(o.w, "[%s] %s\n", ev.Time.Format("15:04:05"), ev.Message)
	}
	return err
}

// ChannelObserver delivers events over a buffered channel without
// blocking the publisher.
type ChannelObserver struct {
	ch chan Event
}

// NewChannelObserver creates an observer with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelObserver{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the observer's channel.
func (o *ChannelObserver) Events() <-chan Event {
	return o.ch
}

// Notify enqueues the event, or reports the observer as broken when the
// buffer is full.
func (o *ChannelObserver) Notify(ev Event) error {
	select {
	case o.ch <- ev:
		return nil
	default:
		return ErrChannelFull
	}
}
