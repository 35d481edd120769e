package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/wasapi-go/sessionctl/pkg/session"

// Metric names.
const (
	MetricNativeCalls        = "audiosession.native.calls"
	MetricNativeCallDuration = "audiosession.native.call.duration"
	MetricNotifications      = "audiosession.notifications"
)

// instruments records native call and notification metrics.
type instruments struct {
	calls         metric.Int64Counter
	callDuration  metric.Float64Histogram
	notifications metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	calls, err := meter.Int64Counter(
		MetricNativeCalls,
		metric.WithDescription("Native session calls by operation and status"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		MetricNativeCallDuration,
		metric.WithDescription("Native session call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter(
		MetricNotifications,
		metric.WithDescription("Session notifications delivered by the audio subsystem"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		calls:         calls,
		callDuration:  callDuration,
		notifications: notifications,
	}, nil
}

// noopInstruments never fails to build.
func noopInstruments() *instruments {
	in, _ := newInstruments(noop.NewMeterProvider())
	return in
}

func (in *instruments) recordCall(op string, status Status, elapsed time.Duration) {
	ctx := context.Background()
	in.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("status", status.String()),
	))
	in.callDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("op", op),
	))
}

func (in *instruments) recordNotification(kind string) {
	in.notifications.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("event", kind),
	))
}
