package wca

import (
	"errors"

	"github.com/go-ole/go-ole"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

func status(hr uintptr) session.Status {
	return session.Status(uint32(hr))
}

// statusOf recovers the HRESULT from an error returned by go-wca or go-ole.
// Success codes other than S_OK, such as S_FALSE, also arrive as errors.
func statusOf(err error) session.Status {
	if err == nil {
		return session.StatusOK
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		return status(oleErr.Code())
	}
	return session.StatusFail
}
