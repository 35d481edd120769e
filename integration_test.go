package sessionctl_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wasapi-go/sessionctl/internal/sessiontest"
	"github.com/wasapi-go/sessionctl/internal/telemetry"
	"github.com/wasapi-go/sessionctl/pkg/log"
	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

var anyCallback = mock.AnythingOfType("*session.EventsCallback")

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("Failed to open capture: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		e, err := reader.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Failed to read capture: %v", err)
		}
		events = append(events, e)
	}
}

// TestE2E_CaptureRoundTrip drives a controller through its lifecycle with
// file capture enabled and reads the capture back.
func TestE2E_CaptureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.alog")
	capture, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("Failed to create capture: %v", err)
	}

	native := sessiontest.NewSession()
	native.Control.On("GetState").Return(session.StateActive, session.StatusOK)
	native.Control.On("SetDisplayName", "Music", uuid.Nil).Return(session.StatusOK)
	var cb session.Notifications
	native.Control.On("RegisterAudioSessionNotification", anyCallback).
		Run(func(args mock.Arguments) { cb = args.Get(0).(session.Notifications) }).
		Return(session.StatusOK)
	native.Control.On("UnregisterAudioSessionNotification", anyCallback).Return(session.StatusOK)

	c := session.New(native, session.WithEventLogger(capture), session.WithLabel("Spotify (pid 4120)"))

	if _, err := c.State(); err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if err := c.SetDisplayName("Music"); err != nil {
		t.Fatalf("SetDisplayName failed: %v", err)
	}

	var names []string
	if err := c.RegisterEventClient(session.EventHandlerFuncs{
		DisplayNameChanged: func(name string) { names = append(names, name) },
	}); err != nil {
		t.Fatalf("RegisterEventClient failed: %v", err)
	}
	if cb == nil {
		t.Fatal("Notification client was not registered")
	}
	cb.OnDisplayNameChanged("Music", uuid.Nil)

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := capture.Close(); err != nil {
		t.Fatalf("Failed to close capture: %v", err)
	}

	if len(names) != 1 || names[0] != "Music" {
		t.Errorf("Handler saw %v, expected [Music]", names)
	}

	events := readAll(t, path)
	var labels []string
	for _, e := range events {
		if e.ControllerID != c.ID().String() {
			t.Errorf("Event has controller ID %s, expected %s", e.ControllerID, c.ID())
		}
		if e.Label != "Spotify (pid 4120)" {
			t.Errorf("Event has label %q", e.Label)
		}
		labels = append(labels, e.TypeLabel())
	}

	got := strings.Join(labels, ",")
	want := "GetState,SetDisplayName,RegisterAudioSessionNotification,State," +
		"DISPLAY_NAME_CHANGED,UnregisterAudioSessionNotification,State,Release,State"
	if got != want {
		t.Errorf("Capture sequence mismatch:\n got: %s\nwant: %s", got, want)
	}
}

// TestE2E_MetricsSummary checks that native calls made while taking a
// snapshot show up in the metrics summary.
func TestE2E_MetricsSummary(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "sessionctl-test",
		ServiceVersion: "test",
		Enabled:        true,
	})
	if err != nil {
		t.Fatalf("Failed to init telemetry: %v", err)
	}
	defer tp.Shutdown(ctx)

	native := sessiontest.NewControl()
	native.On("GetState").Return(session.StateInactive, session.StatusOK)
	native.On("GetDisplayName").Return("Chat", session.StatusOK)
	native.On("GetIconPath").Return("", session.StatusOK)
	native.On("GetGroupingParam").Return(uuid.Nil, session.StatusOK)

	c := session.New(native, session.WithMeterProvider(tp.MeterProvider))
	snap, err := sessioninfo.Take(c, nil)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if snap.Name() != "Chat" || snap.State != "INACTIVE" {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}

	var buf bytes.Buffer
	if err := tp.WriteSummary(ctx, &buf); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	for _, op := range []string{"GetState", "GetDisplayName", "GetIconPath", "GetGroupingParam"} {
		if !strings.Contains(out, "op="+op) {
			t.Errorf("Summary missing op=%s:\n%s", op, out)
		}
	}
}
