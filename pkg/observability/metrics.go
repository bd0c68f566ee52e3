package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "heapkit.requests.total"
	metricRequestDuration  = "heapkit.request.duration.seconds"
	metricErrorsTotal      = "heapkit.errors.total"
	metricInflightRequests = "heapkit.inflight.requests"
	metricElementsTotal    = "heapkit.elements.total"

	attrOp     = "op"
	attrStatus = "status"

	// StatusOK marks a successful operation.
	StatusOK = "ok"
	// StatusError marks a failed operation.
	StatusError = "error"
)

// durationBucketBoundaries covers 10µs to 10s: heap operations on in-memory
// slices are fast, stdin-fed streams can take seconds.
var durationBucketBoundaries = []float64{
	0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10,
}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics,
// plus a counter of elements fed through each operation.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
	elementsTotal    metric.Int64Counter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	reqTotal, err := mt.Int64Counter(metricRequestsTotal,
		metric.WithDescription("Total number of heap operations"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestsTotal, err)
	}

	reqDuration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Heap operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed heap operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRequests,
		metric.WithDescription("Number of in-flight heap operations"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRequests, err)
	}

	elements, err := mt.Int64Counter(metricElementsTotal,
		metric.WithDescription("Total number of input elements processed"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricElementsTotal, err)
	}

	return &REDMetrics{
		requestsTotal:    reqTotal,
		requestDuration:  reqDuration,
		errorsTotal:      errTotal,
		inflightRequests: inflight,
		elementsTotal:    elements,
	}, nil
}

// RecordRequest records a completed operation with its status, duration and
// the number of input elements it consumed.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, elements int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if elements > 0 {
		rm.elementsTotal.Add(ctx, int64(elements), metric.WithAttributes(attribute.String(attrOp, op)))
	}

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}
