package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logOne(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsCallEvent(t *testing.T) {
	entry := logOne(t, Event{
		Timestamp:    time.Now(),
		ControllerID: "ctl-123",
		Direction:    DirectionOut,
		Layer:        LayerNative,
		Category:     CategoryCall,
		Call:         &CallEvent{Op: "SetDisplayName", Status: 0x88890004},
	})

	if entry["controller_id"] != "ctl-123" {
		t.Errorf("controller_id: got %v", entry["controller_id"])
	}
	if entry["direction"] != "OUT" {
		t.Errorf("direction: got %v, want OUT", entry["direction"])
	}
	if entry["op"] != "SetDisplayName" {
		t.Errorf("op: got %v", entry["op"])
	}
	if entry["status"] != "0x88890004" {
		t.Errorf("status: got %v", entry["status"])
	}
}

func TestSlogAdapterLogsNotificationEvent(t *testing.T) {
	vol := float32(0.5)
	muted := true
	entry := logOne(t, Event{
		Timestamp:    time.Now(),
		ControllerID: "ctl-1",
		Layer:        LayerCallback,
		Category:     CategoryNotification,
		Label:        "Spotify",
		Notification: &NotificationEvent{
			Kind:   NotificationSimpleVolumeChanged,
			Volume: &vol,
			Muted:  &muted,
		},
	})

	if entry["notification"] != "SIMPLE_VOLUME_CHANGED" {
		t.Errorf("notification: got %v", entry["notification"])
	}
	if entry["volume"] != 0.5 {
		t.Errorf("volume: got %v", entry["volume"])
	}
	if entry["muted"] != true {
		t.Errorf("muted: got %v", entry["muted"])
	}
	if entry["label"] != "Spotify" {
		t.Errorf("label: got %v", entry["label"])
	}
}

func TestSlogAdapterLogsStateChange(t *testing.T) {
	entry := logOne(t, Event{
		Timestamp:    time.Now(),
		ControllerID: "ctl-1",
		Layer:        LayerController,
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntitySubscription,
			OldState: "UNREGISTERED",
			NewState: "REGISTERED",
		},
	})

	if entry["entity"] != "SUBSCRIPTION" {
		t.Errorf("entity: got %v", entry["entity"])
	}
	if entry["new_state"] != "REGISTERED" {
		t.Errorf("new_state: got %v", entry["new_state"])
	}
}

func TestSlogAdapterLogsError(t *testing.T) {
	status := uint32(0x80004005)
	entry := logOne(t, Event{
		Timestamp:    time.Now(),
		ControllerID: "ctl-1",
		Category:     CategoryError,
		Error: &ErrorEventData{
			Layer:   LayerNative,
			Message: "unregister failed",
			Status:  &status,
			Context: "Close",
		},
	})

	if entry["error_msg"] != "unregister failed" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if entry["error_status"] != "0x80004005" {
		t.Errorf("error_status: got %v", entry["error_status"])
	}
}
