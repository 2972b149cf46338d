package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 1024

// RingTracer remembers the most recent decisions, oldest dropped first.
// Useful when only the tail before a failure matters.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	start int // index of the oldest event
	n     int
	level Level
}

// NewRingTracer keeps up to size events; size <= 0 means defaultRingSize.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Kind) {
		return
	}
	cp := *ev
	cp.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = cp
		t.n++
		return
	}
	t.buf[t.start] = cp
	t.start = (t.start + 1) % len(t.buf)
}

// Len reports how many events are held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Snapshot copies the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
