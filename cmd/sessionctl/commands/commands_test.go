package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wasapi-go/sessionctl/internal/sessiontest"
	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

var anyCallback = mock.AnythingOfType("*session.EventsCallback")

type fakeSource struct {
	natives []session.Control
	err     error
	calls   int
}

func (s *fakeSource) Sessions(opts ...session.Option) ([]*session.Controller, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*session.Controller, 0, len(s.natives))
	for _, n := range s.natives {
		out = append(out, session.New(n, opts...))
	}
	return out, nil
}

// appSession stubs every property sessioninfo.Take reads.
func appSession(pid uint32) *sessiontest.Session {
	s := sessiontest.NewSession()
	s.Control.On("GetState").Return(session.StateActive, session.StatusOK).Maybe()
	s.Control.On("GetDisplayName").Return("", session.StatusOK).Maybe()
	s.Control.On("GetIconPath").Return("", session.StatusOK).Maybe()
	s.Control.On("GetGroupingParam").Return(uuid.Nil, session.StatusOK).Maybe()
	s.Extended.On("GetSessionIdentifier").Return("sid", session.StatusOK).Maybe()
	s.Extended.On("GetSessionInstanceIdentifier").Return("iid", session.StatusOK).Maybe()
	s.Extended.On("GetProcessId").Return(pid, session.StatusOK).Maybe()
	s.Extended.On("IsSystemSoundsSession").Return(session.StatusFalse).Maybe()
	s.Volume.On("GetMasterVolume").Return(float32(0.5), session.StatusOK).Maybe()
	s.Volume.On("GetMute").Return(false, session.StatusOK).Maybe()
	s.Meter.On("GetPeakValue").Return(float32(0), session.StatusOK).Maybe()
	return s
}

var processNames = sessioninfo.ProcessResolverFunc(func(pid uint32) (string, error) {
	switch pid {
	case 100:
		return "Spotify.exe", nil
	case 200:
		return "firefox.exe", nil
	case 300:
		return "firefox.exe", nil
	}
	return "", errors.New("no such process")
})

func newEnv(natives ...session.Control) (*Env, *fakeSource, *bytes.Buffer) {
	src := &fakeSource{natives: natives}
	var out bytes.Buffer
	return &Env{Source: src, Resolver: processNames, Out: &out}, src, &out
}

func TestListFiltersAndClosesEverything(t *testing.T) {
	spotify, firefox := appSession(100), appSession(200)
	env, _, out := newEnv(spotify, firefox)
	env.Selector.NameContains = "spot"

	require.NoError(t, RunList(env, sessioninfo.FormatText))

	assert.Contains(t, out.String(), "Spotify.exe")
	assert.NotContains(t, out.String(), "firefox.exe")
	spotify.Control.AssertCalled(t, "Release")
	firefox.Control.AssertCalled(t, "Release")
}

func TestListEnumerationFailure(t *testing.T) {
	env, src, _ := newEnv()
	src.err = errors.New("device gone")

	err := RunList(env, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
}

func TestSelectSkipsUnreadableSessions(t *testing.T) {
	broken := sessiontest.NewControl()
	broken.On("GetState").Return(session.StateActive, session.StatusDeviceInvalidated)
	good := appSession(100)
	env, _, _ := newEnv(broken, good)

	entries, err := env.Select()
	require.NoError(t, err)
	defer env.CloseAll(entries)

	require.Len(t, entries, 1)
	assert.Equal(t, "Spotify.exe (pid 100)", entries[0].Snapshot.Label())
	broken.AssertCalled(t, "Release")
}

func TestShowDefaultsToYAML(t *testing.T) {
	env, _, out := newEnv(appSession(100))

	require.NoError(t, RunShow(env, ""))
	assert.Contains(t, out.String(), "process_name: Spotify.exe")
}

func TestShowNoMatch(t *testing.T) {
	env, _, _ := newEnv(appSession(100))
	env.Selector.ProcessID = 999

	assert.ErrorIs(t, RunShow(env, ""), ErrNoMatch)
}

func TestSetNameRequiresSingleMatch(t *testing.T) {
	a, b := appSession(200), appSession(300)
	env, _, _ := newEnv(a, b)
	env.Selector.NameContains = "firefox"

	err := RunSetName(env, "Browser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 sessions match")
	a.Control.AssertNotCalled(t, "SetDisplayName", mock.Anything, mock.Anything)
	a.Control.AssertCalled(t, "Release")
	b.Control.AssertCalled(t, "Release")
}

func TestSetName(t *testing.T) {
	s := appSession(100)
	s.Control.On("SetDisplayName", "Music", uuid.Nil).Return(session.StatusOK).Once()
	env, _, out := newEnv(s)

	require.NoError(t, RunSetName(env, "Music"))
	assert.Contains(t, out.String(), `display name set to "Music"`)
	s.Control.AssertExpectations(t)
}

func TestSetNameRejectsEmpty(t *testing.T) {
	env, src, _ := newEnv(appSession(100))

	assert.Error(t, RunSetName(env, ""))
	assert.Zero(t, src.calls)
}

func TestSetNameNativeFailure(t *testing.T) {
	s := appSession(100)
	s.Control.On("SetDisplayName", "Music", uuid.Nil).Return(session.StatusFail)
	env, _, _ := newEnv(s)

	err := RunSetName(env, "Music")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNativeCall)
	assert.Contains(t, err.Error(), "Spotify.exe (pid 100)")
}

func TestSetIcon(t *testing.T) {
	s := appSession(100)
	s.Control.On("SetIconPath", `C:\icons\app.ico`, uuid.Nil).Return(session.StatusOK).Once()
	env, _, _ := newEnv(s)

	require.NoError(t, RunSetIcon(env, `C:\icons\app.ico`))
	s.Control.AssertExpectations(t)
}

func TestSetGroup(t *testing.T) {
	group := uuid.New()
	s := appSession(100)
	s.Control.On("SetGroupingParam", group, uuid.Nil).Return(session.StatusOK).Once()
	env, _, _ := newEnv(s)

	require.NoError(t, RunSetGroup(env, group))
	s.Control.AssertExpectations(t)
}

func TestSetVolume(t *testing.T) {
	s := appSession(100)
	s.Volume.On("SetMasterVolume", float32(0.25), uuid.Nil).Return(session.StatusOK).Once()
	env, _, out := newEnv(s)

	require.NoError(t, RunSetVolume(env, 25))
	assert.Contains(t, out.String(), "volume set to 25%")
	s.Volume.AssertExpectations(t)
}

func TestSetVolumeOutOfRange(t *testing.T) {
	env, src, _ := newEnv(appSession(100))

	assert.Error(t, RunSetVolume(env, 150))
	assert.Error(t, RunSetVolume(env, -1))
	assert.Zero(t, src.calls)
}

func TestMute(t *testing.T) {
	s := appSession(100)
	s.Volume.On("SetMute", true, uuid.Nil).Return(session.StatusOK).Once()
	env, _, out := newEnv(s)

	require.NoError(t, RunMute(env, true))
	assert.Contains(t, out.String(), "muted")
	s.Volume.AssertExpectations(t)
}

func TestMuteWithoutVolumeControl(t *testing.T) {
	s := sessiontest.NewExtendedSession()
	s.Control.On("GetState").Return(session.StateActive, session.StatusOK)
	s.Control.On("GetDisplayName").Return("", session.StatusOK)
	s.Control.On("GetIconPath").Return("", session.StatusOK)
	s.Control.On("GetGroupingParam").Return(uuid.Nil, session.StatusOK)
	s.Extended.On("GetSessionIdentifier").Return("sid", session.StatusOK)
	s.Extended.On("GetSessionInstanceIdentifier").Return("iid", session.StatusOK)
	s.Extended.On("GetProcessId").Return(uint32(100), session.StatusOK)
	s.Extended.On("IsSystemSoundsSession").Return(session.StatusFalse)
	env, _, _ := newEnv(s)

	assert.ErrorIs(t, RunMute(env, true), ErrNoVolumeControl)
}

func TestWatchPrintsNotifications(t *testing.T) {
	s := appSession(100)
	registered := make(chan session.Notifications, 1)
	s.Control.On("RegisterAudioSessionNotification", anyCallback).
		Run(func(args mock.Arguments) { registered <- args.Get(0).(session.Notifications) }).
		Return(session.StatusOK).Once()
	s.Control.On("UnregisterAudioSessionNotification", anyCallback).Return(session.StatusOK).Once()
	env, _, out := newEnv(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunWatch(ctx, env) }()

	cb := <-registered
	assert.Equal(t, session.StatusOK, cb.OnDisplayNameChanged("Music", uuid.Nil))
	assert.Equal(t, session.StatusOK, cb.OnSessionDisconnected(session.DisconnectFormatChanged))
	cancel()
	require.NoError(t, <-done)

	text := out.String()
	assert.Contains(t, text, "Spotify.exe (pid 100)")
	assert.Contains(t, text, `DISPLAY_NAME_CHANGED`)
	assert.Contains(t, text, `name="Music"`)
	assert.Contains(t, text, "reason=FORMAT_CHANGED")
	s.Control.AssertExpectations(t)
}

func TestWatchNoSubscriptions(t *testing.T) {
	s := appSession(100)
	s.Control.On("RegisterAudioSessionNotification", anyCallback).Return(session.StatusFail)
	// The failed subscription stays stored, so closing the session unregisters it.
	s.Control.On("UnregisterAudioSessionNotification", anyCallback).Return(session.StatusOK).Once()
	env, _, _ := newEnv(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := RunWatch(ctx, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not subscribe")
	s.Control.AssertExpectations(t)
}
