package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id; 0 is never issued.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID reads N from the "goroutine N [" header of the stack.
func getGoroutineID() uint64 {
	var buf [64]byte
	header, ok := bytes.CutPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if !ok {
		return 0
	}
	digits, _, ok := bytes.Cut(header, []byte(" "))
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// event stamps a new event with the clock and the next sequence number.
func event(kind Kind, scope Scope, name string, gid uint64) *Event {
	return &Event{Time: time.Now(), Seq: NextSeq(), Kind: kind, Scope: scope, GID: gid, Name: name}
}

func accepts(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open begin/end pair. A span whose scope was filtered out has
// no tracer and every method on it is a no-op.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Begin emits a begin event under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !accepts(t, scope) {
		return &Span{}
	}
	ev := event(KindSpanBegin, scope, name, getGoroutineID())
	ev.SpanID = NextSpanID()
	ev.ParentID = parent
	t.Emit(ev)
	return &Span{tracer: t, begin: *ev}
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// End emits the end event with detail and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := event(KindSpanEnd, s.begin.Scope, s.begin.Name, s.begin.GID)
	ev.SpanID = s.begin.SpanID
	ev.ParentID = s.begin.ParentID
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.begin.Time)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span id, 0 for a filtered span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !accepts(t, scope) {
		return
	}
	ev := event(KindPoint, scope, name, getGoroutineID())
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}

// BeginCtx starts a span under the current span of ctx and returns a
// context where the new span is current.
func BeginCtx(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx).SpanID)
	if !sp.live() {
		return ctx, sp
	}
	return WithSpanContext(ctx, SpanContext{SpanID: sp.begin.SpanID, GID: sp.begin.GID}), sp
}
