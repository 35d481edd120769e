package session

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

type config struct {
	logger        *slog.Logger
	events        log.Logger
	meterProvider metric.MeterProvider
	label         string
}

// Option configures a Controller.
type Option func(*config)

// WithLogger sets the operational logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventLogger enables event capture. Every native call, notification
// and lifecycle transition is recorded to l.
func WithEventLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.events = l
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used for call and
// notification metrics. The default is the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithLabel attaches a human-readable description to captured events, such
// as "Spotify (pid 4120)". Labels are never sent to the native side.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}
