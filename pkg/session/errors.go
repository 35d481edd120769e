package session

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrNativeCall matches every *NativeError via errors.Is.
	ErrNativeCall = errors.New("native session call failed")

	// ErrUnsupportedCapability is returned by the extended accessors when the
	// native object did not expose the extended session interface.
	ErrUnsupportedCapability = errors.New("capability not supported by this session object")

	// ErrClosed is returned by the meter and volume views once their owning
	// Controller has been closed.
	ErrClosed = errors.New("session controller closed")

	// ErrNilHandler is returned when registering a nil EventHandler.
	ErrNilHandler = errors.New("nil event handler")

	// ErrVolumeOutOfRange is returned for volume levels outside [0, 1].
	ErrVolumeOutOfRange = errors.New("volume must be between 0.0 and 1.0")
)

// NativeError reports a native call that returned a failure status.
type NativeError struct {
	Op     string
	Status Status
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %s (0x%08X)", e.Op, e.Status, uint32(e.Status))
}

// Is lets errors.Is(err, ErrNativeCall) match any NativeError.
func (e *NativeError) Is(target error) bool {
	return target == ErrNativeCall
}

// StatusOf extracts the native status from err. It returns StatusOK, false
// when err does not wrap a *NativeError.
func StatusOf(err error) (Status, bool) {
	var ne *NativeError
	if errors.As(err, &ne) {
		return ne.Status, true
	}
	return StatusOK, false
}
