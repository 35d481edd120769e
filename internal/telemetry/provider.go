// Package telemetry sets up OpenTelemetry metrics for sessionctl commands.
//
// Metrics are collected in-process with a manual reader and summarized when
// the command exits; nothing is exported over the network.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Config controls Init.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
}

// Provider holds the initialized meter provider.
type Provider struct {
	MeterProvider metric.MeterProvider

	sdk    *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// Init builds a provider. When metrics are disabled it returns a no-op
// provider whose Summary is always empty.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{MeterProvider: noop.NewMeterProvider()}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return &Provider{MeterProvider: mp, sdk: mp, reader: reader}, nil
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// Counter is one aggregated counter series.
type Counter struct {
	Name       string
	Attributes string
	Value      int64
}

// Summary collects every int64 counter, sorted by name then attributes.
func (p *Provider) Summary(ctx context.Context) ([]Counter, error) {
	if p.reader == nil {
		return nil, nil
	}
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	var out []Counter
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out = append(out, Counter{
					Name:       m.Name,
					Attributes: attributeString(dp.Attributes),
					Value:      dp.Value,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Attributes < out[j].Attributes
	})
	return out, nil
}

// WriteSummary prints Summary as a table. It writes nothing when metrics
// are disabled.
func (p *Provider) WriteSummary(ctx context.Context, w io.Writer) error {
	counters, err := p.Summary(ctx)
	if err != nil || len(counters) == 0 {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tATTRIBUTES\tCOUNT")
	for _, c := range counters {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Name, c.Attributes, c.Value)
	}
	return tw.Flush()
}

func attributeString(set attribute.Set) string {
	var s string
	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		if s != "" {
			s += " "
		}
		s += string(kv.Key) + "=" + kv.Value.Emit()
	}
	return s
}
