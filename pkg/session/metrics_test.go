package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/wasapi-go/sessionctl/internal/sessiontest"
	"github.com/wasapi-go/sessionctl/pkg/session"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(m metricdata.Metrics, key, value string) int64 {
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		return 0
	}
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func TestMetricsRecordCallsAndNotifications(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	var registered session.Notifications
	native := sessiontest.NewControl()
	native.On("GetState").Return(session.StateActive, session.StatusOK).Twice()
	native.On("GetIconPath").Return("", session.StatusFail)
	native.On("RegisterAudioSessionNotification", anyCallback).
		Run(func(args mock.Arguments) { registered = args.Get(0).(session.Notifications) }).
		Return(session.StatusOK)
	native.On("UnregisterAudioSessionNotification", anyCallback).Return(session.StatusOK)

	c := newController(t, native, session.WithMeterProvider(mp))
	_, _ = c.State()
	_, _ = c.State()
	_, _ = c.IconPath()
	require.NoError(t, c.RegisterEventClient(session.EventHandlerFuncs{}))
	registered.OnStateChanged(session.StateInactive)

	metrics := collect(t, reader)

	calls, ok := metrics[session.MetricNativeCalls]
	require.True(t, ok)
	assert.Equal(t, int64(2), sumFor(calls, "op", "GetState"))
	assert.Equal(t, int64(1), sumFor(calls, "status", session.StatusFail.String()))

	notes, ok := metrics[session.MetricNotifications]
	require.True(t, ok)
	assert.Equal(t, int64(1), sumFor(notes, "event", "STATE_CHANGED"))

	_, ok = metrics[session.MetricNativeCallDuration]
	assert.True(t, ok)
}
