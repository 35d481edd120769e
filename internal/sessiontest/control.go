// Package sessiontest provides testify-backed stand-ins for native session
// objects, event handlers and capture loggers.
package sessiontest

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// Control stubs the mandatory session-control capability only.
type Control struct{ mock.Mock }

// NewControl returns a Control that tolerates Release being called.
func NewControl() *Control {
	c := &Control{}
	c.On("Release").Return().Maybe()
	return c
}

func status(ret mock.Arguments, i int) session.Status {
	return ret.Get(i).(session.Status)
}

func (c *Control) GetState() (session.State, session.Status) {
	ret := c.Called()
	return ret.Get(0).(session.State), status(ret, 1)
}
func (c *Control) GetDisplayName() (string, session.Status) {
	ret := c.Called()
	return ret.String(0), status(ret, 1)
}
func (c *Control) SetDisplayName(name string, ctx uuid.UUID) session.Status {
	return status(c.Called(name, ctx), 0)
}
func (c *Control) GetIconPath() (string, session.Status) {
	ret := c.Called()
	return ret.String(0), status(ret, 1)
}
func (c *Control) SetIconPath(path string, ctx uuid.UUID) session.Status {
	return status(c.Called(path, ctx), 0)
}
func (c *Control) GetGroupingParam() (uuid.UUID, session.Status) {
	ret := c.Called()
	return ret.Get(0).(uuid.UUID), status(ret, 1)
}
func (c *Control) SetGroupingParam(id, ctx uuid.UUID) session.Status {
	return status(c.Called(id, ctx), 0)
}
func (c *Control) RegisterAudioSessionNotification(client session.Notifications) session.Status {
	return status(c.Called(client), 0)
}
func (c *Control) UnregisterAudioSessionNotification(client session.Notifications) session.Status {
	return status(c.Called(client), 0)
}
func (c *Control) Release() { c.Called() }

var _ session.Control = (*Control)(nil)

// Extended stubs the extended session-control capability.
type Extended struct{ mock.Mock }

func (e *Extended) GetSessionIdentifier() (string, session.Status) {
	ret := e.Called()
	return ret.String(0), status(ret, 1)
}
func (e *Extended) GetSessionInstanceIdentifier() (string, session.Status) {
	ret := e.Called()
	return ret.String(0), status(ret, 1)
}
func (e *Extended) GetProcessId() (uint32, session.Status) {
	ret := e.Called()
	return ret.Get(0).(uint32), status(ret, 1)
}
func (e *Extended) IsSystemSoundsSession() session.Status {
	return status(e.Called(), 0)
}

var _ session.ExtendedControl = (*Extended)(nil)

// Meter stubs the peak-meter capability.
type Meter struct{ mock.Mock }

func (m *Meter) GetPeakValue() (float32, session.Status) {
	ret := m.Called()
	return ret.Get(0).(float32), status(ret, 1)
}
func (m *Meter) GetMeteringChannelCount() (uint32, session.Status) {
	ret := m.Called()
	return ret.Get(0).(uint32), status(ret, 1)
}
func (m *Meter) GetChannelsPeakValues(count uint32) ([]float32, session.Status) {
	ret := m.Called(count)
	var peaks []float32
	if ret.Get(0) != nil {
		peaks = ret.Get(0).([]float32)
	}
	return peaks, status(ret, 1)
}

var _ session.MeterCapability = (*Meter)(nil)

// Volume stubs the simple volume capability.
type Volume struct{ mock.Mock }

func (v *Volume) GetMasterVolume() (float32, session.Status) {
	ret := v.Called()
	return ret.Get(0).(float32), status(ret, 1)
}
func (v *Volume) SetMasterVolume(level float32, ctx uuid.UUID) session.Status {
	return status(v.Called(level, ctx), 0)
}
func (v *Volume) GetMute() (bool, session.Status) {
	ret := v.Called()
	return ret.Bool(0), status(ret, 1)
}
func (v *Volume) SetMute(muted bool, ctx uuid.UUID) session.Status {
	return status(v.Called(muted, ctx), 0)
}

var _ session.VolumeCapability = (*Volume)(nil)
