package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// SpanContext is what a context carries for nesting: the span later work
// hangs under and the file being processed.
type SpanContext struct {
	SpanID uint64
	File   string
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer returns ctx carrying t. A nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the span context of ctx; the zero value when none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// Start begins a span under the one ctx carries, on the tracer of ctx, and
// returns a context that nests later spans under it. An empty file keeps the
// file of ctx; a known file is recorded on the span. A span the level
// filters out leaves the parent in place.
func Start(ctx context.Context, scope Scope, name, file string) (*Span, context.Context) {
	parent := CurrentSpan(ctx)
	if file == "" {
		file = parent.File
	}
	span := Begin(FromContext(ctx), scope, name, parent.SpanID)
	if file != "" {
		span.WithExtra("file", file)
	}
	next := SpanContext{SpanID: parent.SpanID, File: file}
	if id := span.ID(); id != 0 {
		next.SpanID = id
	}
	return span, WithSpanContext(ctx, next)
}
