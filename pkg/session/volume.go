package session

import (
	"math"

	"github.com/google/uuid"
)

// SimpleVolume controls the session's master volume and mute state. Like
// MeterInformation it returns ErrClosed once the owning Controller is closed.
type SimpleVolume struct {
	native VolumeCapability
	owner  *lifetime
	rec    *recorder
}

// Volume returns the master volume level in [0, 1].
func (v *SimpleVolume) Volume() (float32, error) {
	if v.owner.closed {
		return 0, ErrClosed
	}
	var level float32
	if err := v.rec.call(opGetMasterVolume, func() (s Status) {
		level, s = v.native.GetMasterVolume()
		return s
	}); err != nil {
		return 0, err
	}
	return level, nil
}

// SetVolume sets the master volume level. Levels outside [0, 1] are
// rejected without reaching the native side.
func (v *SimpleVolume) SetVolume(level float32) error {
	if v.owner.closed {
		return ErrClosed
	}
	if math.IsNaN(float64(level)) || level < 0 || level > 1 {
		return ErrVolumeOutOfRange
	}
	return v.rec.call(opSetMasterVolume, func() Status {
		return v.native.SetMasterVolume(level, uuid.Nil)
	})
}

// Muted reports whether the session is muted.
func (v *SimpleVolume) Muted() (bool, error) {
	if v.owner.closed {
		return false, ErrClosed
	}
	var muted bool
	if err := v.rec.call(opGetMute, func() (s Status) {
		muted, s = v.native.GetMute()
		return s
	}); err != nil {
		return false, err
	}
	return muted, nil
}

// SetMuted mutes or unmutes the session.
func (v *SimpleVolume) SetMuted(muted bool) error {
	if v.owner.closed {
		return ErrClosed
	}
	return v.rec.call(opSetMute, func() Status {
		return v.native.SetMute(muted, uuid.Nil)
	})
}
