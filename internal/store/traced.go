package store

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "wedding-rsvp/internal/store"

type tracedKV struct {
	next    KV
	backend string
	tracer  trace.Tracer
}

// Traced wraps kv so every call is recorded as a span named after backend.
func Traced(kv KV, backend string) KV {
	return &tracedKV{next: kv, backend: backend, tracer: otel.Tracer(tracerName)}
}

func (t *tracedKV) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "store."+op, trace.WithAttributes(
		attribute.String("store.backend", t.backend),
		attribute.String("store.key", key),
	))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *tracedKV) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := t.start(ctx, "list", prefix)
	keys, err := t.next.List(ctx, prefix)
	span.SetAttributes(attribute.Int("store.keys", len(keys)))
	finish(span, err)
	return keys, err
}

func (t *tracedKV) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := t.start(ctx, "get", key)
	v, ok, err := t.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("store.found", ok))
	finish(span, err)
	return v, ok, err
}

func (t *tracedKV) Set(ctx context.Context, key, value string) error {
	ctx, span := t.start(ctx, "set", key)
	err := t.next.Set(ctx, key, value)
	finish(span, err)
	return err
}
