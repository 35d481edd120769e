package session_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wasapi-go/sessionctl/internal/sessiontest"
	"github.com/wasapi-go/sessionctl/pkg/session"
)

func TestMeterInformation(t *testing.T) {
	native := sessiontest.NewSession()
	native.Meter.On("GetPeakValue").Return(float32(0.42), session.StatusOK)
	native.Meter.On("GetMeteringChannelCount").Return(uint32(2), session.StatusOK)
	native.Meter.On("GetChannelsPeakValues", uint32(2)).Return([]float32{0.4, 0.42}, session.StatusOK)

	c := newController(t, native)
	m := c.Meter()
	require.NotNil(t, m)

	peak, err := m.PeakValue()
	require.NoError(t, err)
	assert.InDelta(t, 0.42, peak, 1e-6)

	peaks, err := m.ChannelPeakValues()
	require.NoError(t, err)
	assert.Equal(t, []float32{0.4, 0.42}, peaks)
}

func TestMeterInformationNoChannels(t *testing.T) {
	native := sessiontest.NewSession()
	native.Meter.On("GetMeteringChannelCount").Return(uint32(0), session.StatusOK)

	c := newController(t, native)

	peaks, err := c.Meter().ChannelPeakValues()
	require.NoError(t, err)
	assert.Empty(t, peaks)
	native.Meter.AssertNotCalled(t, "GetChannelsPeakValues", mock.Anything)
}

func TestMeterInformationFailure(t *testing.T) {
	native := sessiontest.NewSession()
	native.Meter.On("GetMeteringChannelCount").Return(uint32(0), session.StatusDeviceInvalidated)

	c := newController(t, native)

	_, err := c.Meter().ChannelPeakValues()
	assert.ErrorIs(t, err, session.ErrNativeCall)
}

func TestSimpleVolume(t *testing.T) {
	native := sessiontest.NewSession()
	native.Volume.On("GetMasterVolume").Return(float32(0.8), session.StatusOK)
	native.Volume.On("SetMasterVolume", float32(0.5), uuid.Nil).Return(session.StatusOK)
	native.Volume.On("GetMute").Return(true, session.StatusOK)
	native.Volume.On("SetMute", false, uuid.Nil).Return(session.StatusOK)

	c := newController(t, native)
	v := c.Volume()
	require.NotNil(t, v)

	level, err := v.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, level, 1e-6)

	require.NoError(t, v.SetVolume(0.5))

	muted, err := v.Muted()
	require.NoError(t, err)
	assert.True(t, muted)

	require.NoError(t, v.SetMuted(false))
	native.Volume.AssertExpectations(t)
}

func TestSimpleVolumeRejectsOutOfRange(t *testing.T) {
	native := sessiontest.NewSession()
	c := newController(t, native)

	for _, level := range []float32{-0.01, 1.01, float32(math.NaN())} {
		assert.ErrorIs(t, c.Volume().SetVolume(level), session.ErrVolumeOutOfRange)
	}
	native.Volume.AssertNotCalled(t, "SetMasterVolume", mock.Anything, mock.Anything)
}

func TestViewsAfterClose(t *testing.T) {
	native := sessiontest.NewSession()
	c := session.New(native)
	m, v := c.Meter(), c.Volume()
	require.NoError(t, c.Close())

	_, err := m.PeakValue()
	assert.ErrorIs(t, err, session.ErrClosed)
	_, err = m.ChannelCount()
	assert.ErrorIs(t, err, session.ErrClosed)
	_, err = m.ChannelPeakValues()
	assert.ErrorIs(t, err, session.ErrClosed)

	_, err = v.Volume()
	assert.ErrorIs(t, err, session.ErrClosed)
	assert.ErrorIs(t, v.SetVolume(0.5), session.ErrClosed)
	_, err = v.Muted()
	assert.ErrorIs(t, err, session.ErrClosed)
	assert.ErrorIs(t, v.SetMuted(true), session.ErrClosed)

	assert.Empty(t, native.Meter.Calls)
	assert.Empty(t, native.Volume.Calls)
}
