//go:build windows

package wca

import (
	"unsafe"

	"github.com/go-ole/go-ole"
	coreaudio "github.com/moutend/go-wca/pkg/wca"
	"golang.org/x/sys/windows"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// queryInterface returns the requested interface of unk as T, or nil when
// it is not supported. T must be a go-wca interface type.
func queryInterface[T any](unk *ole.IUnknown, iid *ole.GUID) *T {
	disp, err := unk.QueryInterface(iid)
	if err != nil || disp == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(disp))
}

// takeString converts a CoTaskMemAlloc'd UTF-16 string and frees it.
func takeString(p *uint16) string {
	if p == nil {
		return ""
	}
	s := windows.UTF16PtrToString(p)
	ole.CoTaskMemFree(uintptr(unsafe.Pointer(p)))
	return s
}

// utf16Arg returns a NUL-terminated UTF-16 copy of s. Strings containing NUL
// are rejected with E_INVALIDARG.
func utf16Arg(s string) (*uint16, session.Status) {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return nil, session.StatusInvalidArg
	}
	return p, session.StatusOK
}

func masterVolume(v *coreaudio.ISimpleAudioVolume) (float32, session.Status) {
	var level float32
	err := v.GetMasterVolume(&level)
	return level, statusOf(err)
}
