package trace

import "context"

// binding is what a context carries: the tracer and the innermost open span.
// Both travel in one value so a lookup is a single ctx.Value walk.
type binding struct {
	tracer Tracer
	span   SpanContext
}

type bindingKey struct{}

// SpanContext identifies the span new spans of a context nest under.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

func bound(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(bindingKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer of ctx, Nop when there is none.
func FromContext(ctx context.Context) Tracer {
	return bound(ctx).tracer
}

// WithTracer returns ctx with t as its tracer. The current span is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	b := bound(ctx)
	b.tracer = t
	return context.WithValue(ctx, bindingKey{}, b)
}

// CurrentSpan returns the innermost span opened with BeginCtx, zero at the
// root.
func CurrentSpan(ctx context.Context) SpanContext {
	return bound(ctx).span
}

// WithSpanContext returns ctx with sc as the current span.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	b := bound(ctx)
	b.span = sc
	return context.WithValue(ctx, bindingKey{}, b)
}
