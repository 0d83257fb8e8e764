package hooks

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingHook implements OpenTelemetry tracing
type TracingHook struct {
	tracer trace.Tracer
}

// NewTracingHook creates a new tracing hook
func NewTracingHook(tracer trace.Tracer) *TracingHook {
	return &TracingHook{tracer: tracer}
}

type spanCtxKey struct{}

// BeforeConn is called before a lifecycle operation starts
func (h *TracingHook) BeforeConn(ctx context.Context, event *ConnEvent) context.Context {
	if h.tracer == nil {
		return ctx
	}

	ctx, span := h.tracer.Start(ctx, "db."+event.Op,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return context.WithValue(ctx, spanCtxKey{}, span)
}

// AfterConn is called after a lifecycle operation finishes
func (h *TracingHook) AfterConn(ctx context.Context, event *ConnEvent) {
	spanVal := ctx.Value(spanCtxKey{})
	if spanVal == nil {
		return
	}

	span, ok := spanVal.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", event.Op),
	)
	if event.Target != "" {
		span.SetAttributes(attribute.String("db.target", event.Target))
	}

	if event.Err != nil {
		span.RecordError(event.Err)
		span.SetStatus(codes.Error, event.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
