package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID; 0 is never returned.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// goroutineID parses the header of runtime.Stack ("goroutine 17 [running]:").
// Only traced events pay for it.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b, ok := bytes.CutPrefix(b, []byte("goroutine "))
	if !ok {
		return 0
	}
	if end := bytes.IndexByte(b, ' '); end >= 0 {
		b = b[:end]
	}
	gid, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// newEvent fills the fields every event shares.
func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{
		Time:  time.Now(),
		Seq:   NextSeq(),
		Kind:  kind,
		Scope: scope,
		GID:   goroutineID(),
		Name:  name,
	}
}

// Span is an interval between a SpanBegin and a SpanEnd event. A span on a
// disabled tracer or filtered scope is inert: every method is a no-op.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

var inert = &Span{tracer: Nop}

// Begin starts a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return inert
	}

	ev := newEvent(KindSpanBegin, scope, name)
	ev.SpanID = NextSpanID()
	ev.ParentID = parent
	t.Emit(ev)

	return &Span{
		tracer:   t,
		id:       ev.SpanID,
		parentID: parent,
		gid:      ev.GID,
		scope:    scope,
		name:     name,
		started:  ev.Time,
	}
}

func (s *Span) recording() bool {
	return s != nil && s.id != 0
}

// End emits the SpanEnd event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.recording() {
		return 0
	}
	ev := newEvent(KindSpanEnd, s.scope, s.name)
	ev.SpanID = s.id
	ev.ParentID = s.parentID
	ev.GID = s.gid
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.recording() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under this span at the given scope.
func (s *Span) Point(scope Scope, name, detail string) {
	if !s.recording() {
		return
	}
	Point(s.tracer, scope, name, detail, s.id)
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}
