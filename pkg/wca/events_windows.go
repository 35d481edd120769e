//go:build windows

package wca

import (
	"math"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/google/uuid"
	coreaudio "github.com/moutend/go-wca/pkg/wca"
	"golang.org/x/sys/windows"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// audioSessionEventsVtbl is the IAudioSessionEvents vtable implemented in Go.
// go-wca declares the interface but cannot host a Go implementation of it.
type audioSessionEventsVtbl struct {
	ole.IUnknownVtbl
	OnDisplayNameChanged   uintptr
	OnIconPathChanged      uintptr
	OnSimpleVolumeChanged  uintptr
	OnChannelVolumeChanged uintptr
	OnGroupingParamChanged uintptr
	OnStateChanged         uintptr
	OnSessionDisconnected  uintptr
}

var (
	eventsVtblOnce sync.Once
	eventsVtbl     *audioSessionEventsVtbl

	// liveEvents keeps every object the audio service may still call alive,
	// keyed by the address handed out as its COM pointer.
	liveEvents sync.Map
)

func sharedEventsVtbl() *audioSessionEventsVtbl {
	eventsVtblOnce.Do(func() {
		eventsVtbl = &audioSessionEventsVtbl{
			IUnknownVtbl: ole.IUnknownVtbl{
				QueryInterface: syscall.NewCallback(eventsQueryInterface),
				AddRef:         syscall.NewCallback(eventsAddRef),
				Release:        syscall.NewCallback(eventsRelease),
			},
			OnDisplayNameChanged:   syscall.NewCallback(eventsOnDisplayNameChanged),
			OnIconPathChanged:      syscall.NewCallback(eventsOnIconPathChanged),
			OnSimpleVolumeChanged:  syscall.NewCallback(eventsOnSimpleVolumeChanged),
			OnChannelVolumeChanged: syscall.NewCallback(eventsOnChannelVolumeChanged),
			OnGroupingParamChanged: syscall.NewCallback(eventsOnGroupingParamChanged),
			OnStateChanged:         syscall.NewCallback(eventsOnStateChanged),
			OnSessionDisconnected:  syscall.NewCallback(eventsOnSessionDisconnected),
		}
	})
	return eventsVtbl
}

// eventsObject is a COM object forwarding IAudioSessionEvents to a
// session.Notifications. The vtable pointer must stay the first field.
type eventsObject struct {
	vtbl   *audioSessionEventsVtbl
	refs   int32
	target session.Notifications

	// volume re-reads the master level for OnSimpleVolumeChanged; may be nil.
	volume *coreaudio.ISimpleAudioVolume
}

// newEventsObject returns an object holding one reference, owned by the
// caller.
func newEventsObject(target session.Notifications, volume *coreaudio.ISimpleAudioVolume) *eventsObject {
	obj := &eventsObject{
		vtbl:   sharedEventsVtbl(),
		refs:   1,
		target: target,
		volume: volume,
	}
	if volume != nil {
		volume.AddRef()
	}
	liveEvents.Store(obj.ptr(), obj)
	return obj
}

func (o *eventsObject) ptr() uintptr {
	return uintptr(unsafe.Pointer(o))
}

func (o *eventsObject) addRef() uint32 {
	return uint32(atomic.AddInt32(&o.refs, 1))
}

func (o *eventsObject) release() uint32 {
	n := atomic.AddInt32(&o.refs, -1)
	if n == 0 {
		liveEvents.Delete(o.ptr())
		if o.volume != nil {
			o.volume.Release()
			o.volume = nil
		}
	}
	return uint32(n)
}

func lookupEvents(this uintptr) (*eventsObject, bool) {
	v, ok := liveEvents.Load(this)
	if !ok {
		return nil, false
	}
	return v.(*eventsObject), true
}

const (
	hrOK          = uintptr(session.StatusOK)
	hrNoInterface = uintptr(session.StatusNoInterface)
	hrPointer     = uintptr(session.StatusPointer)
)

func eventsQueryInterface(this, riid, ppv uintptr) uintptr {
	if ppv == 0 || riid == 0 {
		return hrPointer
	}
	out := (*uintptr)(unsafe.Pointer(ppv))
	iid := (*ole.GUID)(unsafe.Pointer(riid))
	obj, ok := lookupEvents(this)
	if !ok || !(ole.IsEqualGUID(iid, ole.IID_IUnknown) || ole.IsEqualGUID(iid, IID_IAudioSessionEvents)) {
		*out = 0
		return hrNoInterface
	}
	obj.addRef()
	*out = this
	return hrOK
}

func eventsAddRef(this uintptr) uintptr {
	if obj, ok := lookupEvents(this); ok {
		return uintptr(obj.addRef())
	}
	return 0
}

func eventsRelease(this uintptr) uintptr {
	if obj, ok := lookupEvents(this); ok {
		return uintptr(obj.release())
	}
	return 0
}

func eventsOnDisplayNameChanged(this, name, eventContext uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	return uintptr(obj.target.OnDisplayNameChanged(stringAt(name), guidAt(eventContext)))
}

func eventsOnIconPathChanged(this, path, eventContext uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	return uintptr(obj.target.OnIconPathChanged(stringAt(path), guidAt(eventContext)))
}

// eventsOnSimpleVolumeChanged receives the new level in XMM1 on 64-bit
// Windows, which Go callbacks cannot read, so the level is re-read from the
// session. On 386 every argument is on the stack and levelBits is exact.
func eventsOnSimpleVolumeChanged(this, levelBits, muted, eventContext uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	level := math.Float32frombits(uint32(levelBits))
	if unsafe.Sizeof(uintptr(0)) == 8 && obj.volume != nil {
		if v, st := masterVolume(obj.volume); st.Succeeded() {
			level = v
		}
	}
	return uintptr(obj.target.OnSimpleVolumeChanged(level, muted != 0, guidAt(eventContext)))
}

func eventsOnChannelVolumeChanged(this, count, volumes, changed, eventContext uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	var levels []float32
	if volumes != 0 && count > 0 {
		levels = append(levels, unsafe.Slice((*float32)(unsafe.Pointer(volumes)), int(count))...)
	}
	return uintptr(obj.target.OnChannelVolumeChanged(levels, uint32(changed), guidAt(eventContext)))
}

func eventsOnGroupingParamChanged(this, group, eventContext uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	return uintptr(obj.target.OnGroupingParamChanged(guidAt(group), guidAt(eventContext)))
}

func eventsOnStateChanged(this, state uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	return uintptr(obj.target.OnStateChanged(session.State(uint32(state))))
}

func eventsOnSessionDisconnected(this, reason uintptr) uintptr {
	obj, ok := lookupEvents(this)
	if !ok {
		return hrOK
	}
	return uintptr(obj.target.OnSessionDisconnected(session.DisconnectReason(uint32(reason))))
}

func stringAt(p uintptr) string {
	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(p)))
}

func guidAt(p uintptr) uuid.UUID {
	if p == 0 {
		return uuid.Nil
	}
	return uuidFromGUID((*ole.GUID)(unsafe.Pointer(p)))
}
