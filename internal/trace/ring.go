package trace

import (
	"bufio"
	"io"
	"sync"
)

// DefaultRingSize is the ring capacity used when none is configured.
const DefaultRingSize = 4096

// RingTracer keeps the last events in memory. It is meant for
// --trace-mode=ring, where the buffer is written out only at exit or when
// the command panics.
type RingTracer struct {
	mu      sync.Mutex
	events  []Event
	next    int // slot to overwrite once the ring is full
	dropped uint64
	level   Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{
		events: make([]Event, 0, capacity),
		level:  level,
	}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
// Heartbeats bypass the level filter.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.events) < cap(t.events) {
		t.events = append(t.events, *ev)
		return
	}
	t.events[t.next] = *ev
	t.next = (t.next + 1) % len(t.events)
	t.dropped++
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Dump writes the stored events oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	bw := bufio.NewWriter(w)
	events := t.Snapshot()
	for i := range events {
		if _, err := bw.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
