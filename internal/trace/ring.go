package trace

import (
	"io"
	"sync"
)

// RingTracer retains only the most recent events. Nothing is written until
// Flush, which drains the retained tail to the output, if one is set.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int
	filled bool
	level  Level

	out    io.Writer
	format Format
}

// NewRingTracer returns a ring of size events (4096 when size <= 0) with no
// output; read it with Events or Dump.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func newRingOutput(size int, level Level, w io.Writer, format Format) *RingTracer {
	t := NewRingTracer(size, level)
	t.out, t.format = w, format
	return t
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.emits(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf[t.next] = *ev
	t.buf[t.next].Seq = NextSeq()
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
}

// Events returns the retained events, oldest first.
func (t *RingTracer) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eventsLocked()
}

func (t *RingTracer) eventsLocked() []Event {
	if !t.filled {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// Dump writes the retained events to w without draining them.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the retained events to the output and empties the ring.
// Without an output it does nothing.
func (t *RingTracer) Flush() error {
	if t.out == nil {
		return nil
	}
	t.mu.Lock()
	events := t.eventsLocked()
	t.next, t.filled = 0, false
	t.mu.Unlock()

	for _, ev := range events {
		if _, err := t.out.Write(FormatEvent(&ev, t.format)); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the output.
func (t *RingTracer) Close() error {
	err := t.Flush()
	if c, ok := t.out.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *RingTracer) Level() Level {
	return t.level
}

func (t *RingTracer) Enabled() bool {
	return t.level > LevelOff
}

// RingOf returns the ring t keeps, directly or inside a MultiTracer.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch v := t.(type) {
	case *RingTracer:
		return v, true
	case *MultiTracer:
		for _, inner := range v.tracers {
			if r, ok := RingOf(inner); ok {
				return r, true
			}
		}
	}
	return nil, false
}
