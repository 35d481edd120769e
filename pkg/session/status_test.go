package session_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status session.Status
		name   string
		failed bool
	}{
		{session.StatusOK, "S_OK", false},
		{session.StatusFalse, "S_FALSE", false},
		{session.StatusFail, "E_FAIL", true},
		{session.StatusDeviceInvalidated, "AUDCLNT_E_DEVICE_INVALIDATED", true},
		{session.Status(0x80041234), "0x80041234", true},
		{session.Status(0x00000042), "0x00000042", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String())
			assert.Equal(t, tt.failed, tt.status.Failed())
			assert.Equal(t, !tt.failed, tt.status.Succeeded())
		})
	}
}

func TestNativeError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &session.NativeError{Op: "GetState", Status: session.StatusFail})

	assert.ErrorIs(t, err, session.ErrNativeCall)
	assert.Equal(t, "wrapped: GetState: E_FAIL (0x80004005)", err.Error())

	status, ok := session.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, session.StatusFail, status)

	status, ok = session.StatusOf(errors.New("other"))
	assert.False(t, ok)
	assert.Equal(t, session.StatusOK, status)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "ACTIVE", session.StateActive.String())
	assert.Equal(t, "EXPIRED", session.StateExpired.String())
	assert.Equal(t, "UNKNOWN", session.State(9).String())
	assert.Equal(t, "EXCLUSIVE_MODE_OVERRIDE", session.DisconnectExclusiveModeOverride.String())
	assert.Equal(t, "METER", session.CapabilityMeter.String())
}
