//go:build windows

package wca

import (
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/google/uuid"
	coreaudio "github.com/moutend/go-wca/pkg/wca"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// SessionControl is an IAudioSessionControl pointer. It implements
// session.Control and discovers the other session interfaces through
// session.CapabilityQuerier.
//
// A SessionControl is owned by the session.Controller built on it; all
// acquired interfaces are released by its Release method.
type SessionControl struct {
	ctl *coreaudio.IAudioSessionControl

	extended *coreaudio.IAudioSessionControl2
	meter    *coreaudio.IAudioMeterInformation
	volume   *coreaudio.ISimpleAudioVolume
	probed   map[session.Capability]bool

	events map[session.Notifications]*eventsObject
}

// NewSessionControl takes ownership of ctl.
func NewSessionControl(ctl *coreaudio.IAudioSessionControl) *SessionControl {
	return &SessionControl{
		ctl:    ctl,
		probed: make(map[session.Capability]bool),
		events: make(map[session.Notifications]*eventsObject),
	}
}

func (s *SessionControl) this() uintptr {
	return uintptr(unsafe.Pointer(s.ctl))
}

func (s *SessionControl) GetState() (session.State, session.Status) {
	var state uint32
	err := s.ctl.GetState(&state)
	return session.State(state), statusOf(err)
}

func (s *SessionControl) GetDisplayName() (string, session.Status) {
	var name string
	if err := s.ctl.GetDisplayName(&name); err != nil {
		return "", statusOf(err)
	}
	return name, session.StatusOK
}

func (s *SessionControl) GetIconPath() (string, session.Status) {
	var path string
	if err := s.ctl.GetIconPath(&path); err != nil {
		return "", statusOf(err)
	}
	return path, session.StatusOK
}

// The setters, the grouping parameter and notification registration are
// E_NOTIMPL stubs in go-wca, so they call the slots of its vtable directly.

func (s *SessionControl) SetDisplayName(name string, eventContext uuid.UUID) session.Status {
	return s.setString(s.ctl.VTable().SetDisplayName, name, eventContext)
}

func (s *SessionControl) SetIconPath(path string, eventContext uuid.UUID) session.Status {
	return s.setString(s.ctl.VTable().SetIconPath, path, eventContext)
}

func (s *SessionControl) setString(method uintptr, value string, eventContext uuid.UUID) session.Status {
	p, st := utf16Arg(value)
	if st.Failed() {
		return st
	}
	ctx := guidFromUUID(eventContext)
	hr, _, _ := syscall.SyscallN(method, s.this(), uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&ctx)))
	return status(hr)
}

func (s *SessionControl) GetGroupingParam() (uuid.UUID, session.Status) {
	var g ole.GUID
	hr, _, _ := syscall.SyscallN(s.ctl.VTable().GetGroupingParam, s.this(), uintptr(unsafe.Pointer(&g)))
	st := status(hr)
	if st.Failed() {
		return uuid.Nil, st
	}
	return uuidFromGUID(&g), st
}

func (s *SessionControl) SetGroupingParam(groupingID, eventContext uuid.UUID) session.Status {
	g := guidFromUUID(groupingID)
	ctx := guidFromUUID(eventContext)
	hr, _, _ := syscall.SyscallN(s.ctl.VTable().SetGroupingParam, s.this(),
		uintptr(unsafe.Pointer(&g)), uintptr(unsafe.Pointer(&ctx)))
	return status(hr)
}

// RegisterAudioSessionNotification wraps client in an IAudioSessionEvents
// object and registers it.
func (s *SessionControl) RegisterAudioSessionNotification(client session.Notifications) session.Status {
	obj := newEventsObject(client, s.volumeInterface())
	hr, _, _ := syscall.SyscallN(s.ctl.VTable().RegisterAudioSessionNotification, s.this(), obj.ptr())
	st := status(hr)
	if st.Failed() {
		obj.release()
		return st
	}
	s.events[client] = obj
	return st
}

// UnregisterAudioSessionNotification unregisters the object wrapping client.
// A client that was never registered successfully has nothing to undo and
// yields S_OK.
func (s *SessionControl) UnregisterAudioSessionNotification(client session.Notifications) session.Status {
	obj, ok := s.events[client]
	if !ok {
		return session.StatusOK
	}
	hr, _, _ := syscall.SyscallN(s.ctl.VTable().UnregisterAudioSessionNotification, s.this(), obj.ptr())
	st := status(hr)
	if st.Failed() {
		return st
	}
	delete(s.events, client)
	obj.release()
	return st
}

// Release drops every interface pointer this SessionControl acquired,
// including its references to event objects still registered.
func (s *SessionControl) Release() {
	for client, obj := range s.events {
		obj.release()
		delete(s.events, client)
	}
	if s.extended != nil {
		s.extended.Release()
		s.extended = nil
	}
	if s.meter != nil {
		s.meter.Release()
		s.meter = nil
	}
	if s.volume != nil {
		s.volume.Release()
		s.volume = nil
	}
	if s.ctl != nil {
		s.ctl.Release()
		s.ctl = nil
	}
}

// QueryCapability implements session.CapabilityQuerier. Each interface is
// queried at most once.
func (s *SessionControl) QueryCapability(c session.Capability) (any, bool) {
	switch c {
	case session.CapabilityExtendedControl:
		if ext := acquire(s, c, &s.extended, coreaudio.IID_IAudioSessionControl2); ext != nil {
			return &extendedControl{ctl: ext}, true
		}
	case session.CapabilityMeter:
		if m := acquire(s, c, &s.meter, coreaudio.IID_IAudioMeterInformation); m != nil {
			return &meterInformation{meter: m}, true
		}
	case session.CapabilityVolume:
		if v := s.volumeInterface(); v != nil {
			return &simpleVolume{volume: v}, true
		}
	}
	return nil, false
}

func (s *SessionControl) volumeInterface() *coreaudio.ISimpleAudioVolume {
	return acquire(s, session.CapabilityVolume, &s.volume, coreaudio.IID_ISimpleAudioVolume)
}

func acquire[T any](s *SessionControl, c session.Capability, slot **T, iid *ole.GUID) *T {
	if !s.probed[c] {
		s.probed[c] = true
		*slot = queryInterface[T](&s.ctl.IUnknown, iid)
	}
	return *slot
}

var (
	_ session.Control           = (*SessionControl)(nil)
	_ session.CapabilityQuerier = (*SessionControl)(nil)
)

// extendedControl is IAudioSessionControl2. It borrows its pointer from
// the owning SessionControl.
type extendedControl struct {
	ctl *coreaudio.IAudioSessionControl2
}

func (e *extendedControl) GetSessionIdentifier() (string, session.Status) {
	var id string
	if err := e.ctl.GetSessionIdentifier(&id); err != nil {
		return "", statusOf(err)
	}
	return id, session.StatusOK
}

func (e *extendedControl) GetSessionInstanceIdentifier() (string, session.Status) {
	var id string
	if err := e.ctl.GetSessionInstanceIdentifier(&id); err != nil {
		return "", statusOf(err)
	}
	return id, session.StatusOK
}

func (e *extendedControl) GetProcessId() (uint32, session.Status) {
	var pid uint32
	err := e.ctl.GetProcessId(&pid)
	return pid, statusOf(err)
}

// IsSystemSoundsSession yields S_FALSE for ordinary sessions.
func (e *extendedControl) IsSystemSoundsSession() session.Status {
	return statusOf(e.ctl.IsSystemSoundsSession())
}

var _ session.ExtendedControl = (*extendedControl)(nil)

// meterInformation is IAudioMeterInformation.
type meterInformation struct {
	meter *coreaudio.IAudioMeterInformation
}

func (m *meterInformation) GetPeakValue() (float32, session.Status) {
	var peak float32
	err := m.meter.GetPeakValue(&peak)
	return peak, statusOf(err)
}

func (m *meterInformation) GetMeteringChannelCount() (uint32, session.Status) {
	var n uint32
	err := m.meter.GetMeteringChannelCount(&n)
	return n, statusOf(err)
}

// GetChannelsPeakValues calls the vtable slot; go-wca does not implement it.
func (m *meterInformation) GetChannelsPeakValues(count uint32) ([]float32, session.Status) {
	if count == 0 {
		return []float32{}, session.StatusOK
	}
	peaks := make([]float32, count)
	hr, _, _ := syscall.SyscallN(m.meter.VTable().GetChannelsPeakValues, uintptr(unsafe.Pointer(m.meter)),
		uintptr(count), uintptr(unsafe.Pointer(&peaks[0])))
	st := status(hr)
	if st.Failed() {
		return nil, st
	}
	return peaks, st
}

var _ session.MeterCapability = (*meterInformation)(nil)

// simpleVolume is ISimpleAudioVolume.
type simpleVolume struct {
	volume *coreaudio.ISimpleAudioVolume
}

func (v *simpleVolume) GetMasterVolume() (float32, session.Status) {
	return masterVolume(v.volume)
}

func (v *simpleVolume) SetMasterVolume(level float32, eventContext uuid.UUID) session.Status {
	ctx := guidFromUUID(eventContext)
	return statusOf(v.volume.SetMasterVolume(level, &ctx))
}

func (v *simpleVolume) GetMute() (bool, session.Status) {
	var muted bool
	err := v.volume.GetMute(&muted)
	return muted, statusOf(err)
}

func (v *simpleVolume) SetMute(muted bool, eventContext uuid.UUID) session.Status {
	ctx := guidFromUUID(eventContext)
	return statusOf(v.volume.SetMute(muted, &ctx))
}

var _ session.VolumeCapability = (*simpleVolume)(nil)
