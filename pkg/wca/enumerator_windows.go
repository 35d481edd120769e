//go:build windows

package wca

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	coreaudio "github.com/moutend/go-wca/pkg/wca"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

const sFalse = 1

// Enumerator lists the audio sessions of the default endpoints.
//
// NewEnumerator joins the calling thread to the multithreaded apartment and
// locks the goroutine to it; Close must be called from the same goroutine.
type Enumerator struct {
	devices *coreaudio.IMMDeviceEnumerator
	initCOM bool
}

// NewEnumerator initializes COM and creates the device enumerator.
func NewEnumerator() (*Enumerator, error) {
	runtime.LockOSThread()

	e := &Enumerator{}
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}
	e.initCOM = true

	if err := coreaudio.CoCreateInstance(coreaudio.CLSID_MMDeviceEnumerator, 0, coreaudio.CLSCTX_ALL,
		coreaudio.IID_IMMDeviceEnumerator, &e.devices); err != nil {
		e.Close()
		return nil, fmt.Errorf("create device enumerator: %w", err)
	}
	return e, nil
}

// Close releases the device enumerator and uninitializes COM. Controllers
// returned by Sessions must be closed first.
func (e *Enumerator) Close() {
	if e.devices != nil {
		e.devices.Release()
		e.devices = nil
	}
	if e.initCOM {
		ole.CoUninitialize()
		e.initCOM = false
		runtime.UnlockOSThread()
	}
}

// Sessions returns a controller for every session on the default endpoint
// of flow. opts apply to each controller. The caller closes the controllers.
func (e *Enumerator) Sessions(flow DataFlow, opts ...session.Option) ([]*session.Controller, error) {
	natives, err := e.sessionControls(flow)
	if err != nil {
		return nil, err
	}
	controllers := make([]*session.Controller, 0, len(natives))
	for _, native := range natives {
		controllers = append(controllers, session.New(native, opts...))
	}
	return controllers, nil
}

func (e *Enumerator) sessionControls(flow DataFlow) ([]*SessionControl, error) {
	if e.devices == nil {
		return nil, errors.New("enumerator closed")
	}

	var device *coreaudio.IMMDevice
	if err := e.devices.GetDefaultAudioEndpoint(uint32(flow), coreaudio.EConsole, &device); err != nil {
		return nil, nativeError("GetDefaultAudioEndpoint", err)
	}
	defer device.Release()

	var manager *coreaudio.IAudioSessionManager2
	if err := device.Activate(coreaudio.IID_IAudioSessionManager2, coreaudio.CLSCTX_ALL, nil, &manager); err != nil {
		return nil, nativeError("Activate", err)
	}
	defer manager.Release()

	var sessions *coreaudio.IAudioSessionEnumerator
	if err := manager.GetSessionEnumerator(&sessions); err != nil {
		return nil, nativeError("GetSessionEnumerator", err)
	}
	defer sessions.Release()

	var count int
	if err := sessions.GetCount(&count); err != nil {
		return nil, nativeError("GetCount", err)
	}

	out := make([]*SessionControl, 0, count)
	for i := 0; i < count; i++ {
		var ctl *coreaudio.IAudioSessionControl
		if err := sessions.GetSession(i, &ctl); err != nil {
			for _, s := range out {
				s.Release()
			}
			return nil, nativeError("GetSession", err)
		}
		out = append(out, NewSessionControl(ctl))
	}
	return out, nil
}

func nativeError(op string, err error) error {
	return &session.NativeError{Op: op, Status: statusOf(err)}
}
