package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/hanko-field/cartview/internal/platform/observability")

// ShipmentMetrics records shipment assembly counters and latency.
type ShipmentMetrics struct {
	assembled   metric.Int64Counter
	unavailable metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewShipmentMetrics registers the shipment instruments on the global meter provider.
func NewShipmentMetrics() (*ShipmentMetrics, error) {
	assembled, err := meter.Int64Counter("cartview.shipments.assembled",
		metric.WithDescription("Shipment view models assembled"))
	if err != nil {
		return nil, err
	}
	unavailable, err := meter.Int64Counter("cartview.shipping_methods.unavailable",
		metric.WithDescription("Shipments assembled without any eligible shipping method"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("cartview.shipments.assembly_duration",
		metric.WithDescription("Time spent assembling shipment view models for a cart"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	return &ShipmentMetrics{assembled: assembled, unavailable: unavailable, duration: duration}, nil
}

// ObserveShipment counts one assembled shipment and whether it had any shipping method.
func (m *ShipmentMetrics) ObserveShipment(ctx context.Context, marketID string, methods int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("market", marketID))
	m.assembled.Add(ctx, 1, attrs)
	if methods == 0 {
		m.unavailable.Add(ctx, 1, attrs)
	}
}

// ObserveAssembly records the duration of one cart assembly.
func (m *ShipmentMetrics) ObserveAssembly(ctx context.Context, marketID string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000,
		metric.WithAttributes(
			attribute.String("market", marketID),
			attribute.Bool("error", err != nil),
		))
}
