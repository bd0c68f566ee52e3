package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const attrElements = "heapkit.elements"

// Instrumenter wraps heap operations with a span and RED metrics.
// Nil fields disable the corresponding signal.
type Instrumenter struct {
	Tracer  trace.Tracer
	Metrics *REDMetrics
}

// Run executes fn as operation op over the given number of input elements.
// The span is marked as failed and the error counted when fn returns an error.
func (in Instrumenter) Run(ctx context.Context, op string, elements int, fn func(ctx context.Context) error) error {
	return in.Stream(ctx, op, func(ctx context.Context) (int, error) {
		return elements, fn(ctx)
	})
}

// Stream is Run for operations that learn their element count while running,
// such as a median fed from an unbounded reader. fn reports the count it consumed.
func (in Instrumenter) Stream(ctx context.Context, op string, fn func(ctx context.Context) (int, error)) error {
	var span trace.Span

	if in.Tracer != nil {
		ctx, span = in.Tracer.Start(ctx, op)
		defer span.End()
	}

	if in.Metrics != nil {
		done := in.Metrics.TrackInflight(ctx, op)
		defer done()
	}

	start := time.Now()
	elements, err := fn(ctx)

	if span != nil {
		span.SetAttributes(attribute.Int(attrElements, elements))
	}

	status := StatusOK
	if err != nil {
		status = StatusError

		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	if in.Metrics != nil {
		in.Metrics.RecordRequest(ctx, op, status, elements, time.Since(start))
	}

	return err
}
