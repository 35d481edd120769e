package session

import "fmt"

// Status is the HRESULT returned by every native session call.
// The high bit marks failure; S_FALSE and other positive codes are successes.
type Status uint32

const (
	// StatusOK is S_OK.
	StatusOK Status = 0x00000000

	// StatusFalse is S_FALSE, a success code that answers "no" to a query.
	StatusFalse Status = 0x00000001

	// StatusNotImplemented is E_NOTIMPL.
	StatusNotImplemented Status = 0x80004001

	// StatusNoInterface is E_NOINTERFACE.
	StatusNoInterface Status = 0x80004002

	// StatusPointer is E_POINTER: an output argument was nil.
	StatusPointer Status = 0x80004003

	// StatusFail is E_FAIL.
	StatusFail Status = 0x80004005

	// StatusOutOfMemory is E_OUTOFMEMORY.
	StatusOutOfMemory Status = 0x8007000E

	// StatusInvalidArg is E_INVALIDARG.
	StatusInvalidArg Status = 0x80070057

	// StatusNotInitialized is AUDCLNT_E_NOT_INITIALIZED.
	StatusNotInitialized Status = 0x88890001

	// StatusDeviceInvalidated is AUDCLNT_E_DEVICE_INVALIDATED: the endpoint
	// backing the session was removed or disabled.
	StatusDeviceInvalidated Status = 0x88890004

	// StatusServiceNotRunning is AUDCLNT_E_SERVICE_NOT_RUNNING.
	StatusServiceNotRunning Status = 0x88890010
)

// String returns the symbolic name, or the hex code for unknown values.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "S_OK"
	case StatusFalse:
		return "S_FALSE"
	case StatusNotImplemented:
		return "E_NOTIMPL"
	case StatusNoInterface:
		return "E_NOINTERFACE"
	case StatusPointer:
		return "E_POINTER"
	case StatusFail:
		return "E_FAIL"
	case StatusOutOfMemory:
		return "E_OUTOFMEMORY"
	case StatusInvalidArg:
		return "E_INVALIDARG"
	case StatusNotInitialized:
		return "AUDCLNT_E_NOT_INITIALIZED"
	case StatusDeviceInvalidated:
		return "AUDCLNT_E_DEVICE_INVALIDATED"
	case StatusServiceNotRunning:
		return "AUDCLNT_E_SERVICE_NOT_RUNNING"
	default:
		return fmt.Sprintf("0x%08X", uint32(s))
	}
}

// Succeeded reports whether s is a success code.
func (s Status) Succeeded() bool {
	return s&0x80000000 == 0
}

// Failed reports whether s is a failure code.
func (s Status) Failed() bool {
	return !s.Succeeded()
}
