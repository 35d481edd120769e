package sessioninfo

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasapi-go/sessionctl/internal/sessiontest"
	"github.com/wasapi-go/sessionctl/pkg/session"
)

func newController(t *testing.T, native session.Control) *session.Controller {
	t.Helper()
	c := session.New(native)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTakeFullSession(t *testing.T) {
	group := uuid.New()
	native := sessiontest.NewSession()
	native.Control.On("GetState").Return(session.StateActive, session.StatusOK)
	native.Control.On("GetDisplayName").Return("", session.StatusOK)
	native.Control.On("GetIconPath").Return("app.ico", session.StatusOK)
	native.Control.On("GetGroupingParam").Return(group, session.StatusOK)
	native.Extended.On("GetSessionIdentifier").Return("sid", session.StatusOK)
	native.Extended.On("GetSessionInstanceIdentifier").Return("iid", session.StatusOK)
	native.Extended.On("GetProcessId").Return(uint32(4120), session.StatusOK)
	native.Extended.On("IsSystemSoundsSession").Return(session.StatusFalse)
	native.Volume.On("GetMasterVolume").Return(float32(0.5), session.StatusOK)
	native.Volume.On("GetMute").Return(false, session.StatusOK)
	native.Meter.On("GetPeakValue").Return(float32(0.1), session.StatusOK)

	c := newController(t, native)
	resolver := ProcessResolverFunc(func(pid uint32) (string, error) {
		assert.Equal(t, uint32(4120), pid)
		return "Spotify.exe", nil
	})

	snap, err := Take(c, resolver)
	require.NoError(t, err)

	assert.Equal(t, c.ID().String(), snap.ControllerID)
	assert.Equal(t, "ACTIVE", snap.State)
	assert.Equal(t, "app.ico", snap.IconPath)
	assert.Equal(t, group.String(), snap.GroupingParam)
	assert.Equal(t, "sid", snap.SessionIdentifier)
	assert.Equal(t, "iid", snap.InstanceIdentifier)
	assert.Equal(t, uint32(4120), snap.ProcessID)
	assert.False(t, snap.SystemSounds)
	assert.Equal(t, "Spotify.exe", snap.ProcessName)
	require.NotNil(t, snap.Volume)
	assert.InDelta(t, 0.5, *snap.Volume, 1e-6)
	require.NotNil(t, snap.Muted)
	assert.False(t, *snap.Muted)
	require.NotNil(t, snap.Peak)

	assert.Equal(t, "Spotify.exe", snap.Name())
	assert.Equal(t, "Spotify.exe (pid 4120)", snap.Label())
}

func TestTakeMandatoryOnly(t *testing.T) {
	native := sessiontest.NewControl()
	native.On("GetState").Return(session.StateInactive, session.StatusOK)
	native.On("GetDisplayName").Return("Game", session.StatusOK)
	native.On("GetIconPath").Return("", session.StatusOK)
	native.On("GetGroupingParam").Return(uuid.Nil, session.StatusOK)

	c := newController(t, native)

	snap, err := Take(c, ProcessResolverFunc(func(uint32) (string, error) {
		t.Fatal("resolver must not be called without a process id")
		return "", nil
	}))
	require.NoError(t, err)

	assert.Equal(t, "Game", snap.DisplayName)
	assert.Empty(t, snap.GroupingParam)
	assert.Empty(t, snap.SessionIdentifier)
	assert.Zero(t, snap.ProcessID)
	assert.Nil(t, snap.Volume)
	assert.Nil(t, snap.Peak)
	assert.Equal(t, "Game", snap.Label())
}

func TestTakeResolverFailureIsIgnored(t *testing.T) {
	native := sessiontest.NewExtendedSession()
	native.Control.On("GetState").Return(session.StateActive, session.StatusOK)
	native.Control.On("GetDisplayName").Return("", session.StatusOK)
	native.Control.On("GetIconPath").Return("", session.StatusOK)
	native.Control.On("GetGroupingParam").Return(uuid.Nil, session.StatusOK)
	native.Extended.On("GetSessionIdentifier").Return("sid", session.StatusOK)
	native.Extended.On("GetSessionInstanceIdentifier").Return("iid", session.StatusOK)
	native.Extended.On("GetProcessId").Return(uint32(77), session.StatusOK)
	native.Extended.On("IsSystemSoundsSession").Return(session.StatusFalse)

	c := newController(t, native)

	snap, err := Take(c, ProcessResolverFunc(func(uint32) (string, error) {
		return "", errors.New("gone")
	}))
	require.NoError(t, err)
	assert.Empty(t, snap.ProcessName)
	assert.Equal(t, c.ID().String(), snap.Name())
}

func TestTakeNativeFailure(t *testing.T) {
	native := sessiontest.NewControl()
	native.On("GetState").Return(session.StateInactive, session.StatusDeviceInvalidated)

	c := newController(t, native)

	_, err := Take(c, nil)
	assert.ErrorIs(t, err, session.ErrNativeCall)
}

func TestSystemSoundsName(t *testing.T) {
	s := Snapshot{SystemSounds: true, ProcessName: "svchost.exe"}
	assert.Equal(t, "System Sounds", s.Name())
}
