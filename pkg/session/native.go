package session

import "github.com/google/uuid"

// Control is the mandatory native session-control capability
// (IAudioSessionControl). The Controller owns it exclusively and calls
// Release exactly once.
type Control interface {
	GetState() (State, Status)
	GetDisplayName() (string, Status)
	SetDisplayName(name string, eventContext uuid.UUID) Status
	GetIconPath() (string, Status)
	SetIconPath(path string, eventContext uuid.UUID) Status
	GetGroupingParam() (uuid.UUID, Status)
	SetGroupingParam(groupingID, eventContext uuid.UUID) Status
	RegisterAudioSessionNotification(client Notifications) Status
	UnregisterAudioSessionNotification(client Notifications) Status

	// Release drops the native reference. The handle must not be used afterwards.
	Release()
}

// ExtendedControl is the optional extended session-control capability
// (IAudioSessionControl2). It aliases the same native object as Control and
// is never released on its own.
type ExtendedControl interface {
	GetSessionIdentifier() (string, Status)
	GetSessionInstanceIdentifier() (string, Status)
	GetProcessId() (uint32, Status)

	// IsSystemSoundsSession returns StatusOK for the system sounds session
	// and StatusFalse otherwise.
	IsSystemSoundsSession() Status
}

// MeterCapability is the optional peak-meter capability (IAudioMeterInformation).
type MeterCapability interface {
	GetPeakValue() (float32, Status)
	GetMeteringChannelCount() (uint32, Status)
	GetChannelsPeakValues(count uint32) ([]float32, Status)
}

// VolumeCapability is the optional simple volume capability (ISimpleAudioVolume).
type VolumeCapability interface {
	GetMasterVolume() (float32, Status)
	SetMasterVolume(level float32, eventContext uuid.UUID) Status
	GetMute() (bool, Status)
	SetMute(muted bool, eventContext uuid.UUID) Status
}

// Notifications is the native callback capability (IAudioSessionEvents).
// The audio subsystem invokes it on threads of its own choosing.
type Notifications interface {
	OnDisplayNameChanged(name string, eventContext uuid.UUID) Status
	OnIconPathChanged(path string, eventContext uuid.UUID) Status
	OnSimpleVolumeChanged(volume float32, muted bool, eventContext uuid.UUID) Status
	OnChannelVolumeChanged(volumes []float32, changedChannel uint32, eventContext uuid.UUID) Status
	OnGroupingParamChanged(groupingID, eventContext uuid.UUID) Status
	OnStateChanged(state State) Status
	OnSessionDisconnected(reason DisconnectReason) Status
}

// Capability names a secondary interface a native object may expose.
type Capability uint8

const (
	CapabilityExtendedControl Capability = iota + 1
	CapabilityMeter
	CapabilityVolume
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case CapabilityExtendedControl:
		return "EXTENDED_CONTROL"
	case CapabilityMeter:
		return "METER"
	case CapabilityVolume:
		return "VOLUME"
	default:
		return "UNKNOWN"
	}
}

// CapabilityQuerier is implemented by bindings that only learn at run time
// which secondary interfaces the native object supports, e.g. through COM
// QueryInterface. The returned value must implement the interface matching
// c and share the lifetime of the Control it came from.
type CapabilityQuerier interface {
	QueryCapability(c Capability) (any, bool)
}

// probe resolves a capability by type assertion first, then by asking a
// CapabilityQuerier. It never fails; absence yields the zero value.
func probe[T any](native Control, c Capability) (T, bool) {
	if v, ok := native.(T); ok {
		return v, true
	}
	if q, ok := native.(CapabilityQuerier); ok {
		if v, ok := q.QueryCapability(c); ok {
			if t, ok := v.(T); ok {
				return t, true
			}
		}
	}
	var zero T
	return zero, false
}
