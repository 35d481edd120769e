package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/wasapi-go/sessionctl/pkg/version"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("capture file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp:    time.Now(),
		ControllerID: "ctl-123",
		Direction:    DirectionOut,
		Layer:        LayerNative,
		Category:     CategoryCall,
		Call: &CallEvent{
			Op:       "GetDisplayName",
			Status:   0,
			Duration: 42 * time.Microsecond,
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read capture file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("capture file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.ControllerID != event.ControllerID {
		t.Errorf("ControllerID: got %q, want %q", decoded.ControllerID, event.ControllerID)
	}
	if decoded.Call == nil {
		t.Fatal("Call is nil")
	}
	if decoded.Call.Op != "GetDisplayName" {
		t.Errorf("Call.Op: got %q, want %q", decoded.Call.Op, "GetDisplayName")
	}
	if decoded.Call.Duration != 42*time.Microsecond {
		t.Errorf("Call.Duration: got %v, want %v", decoded.Call.Duration, 42*time.Microsecond)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	first, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	first.Log(Event{Timestamp: time.Now(), ControllerID: "ctl-1", Category: CategoryState})
	first.Close()

	info1, _ := os.Stat(path)

	second, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger second open failed: %v", err)
	}
	second.Log(Event{Timestamp: time.Now(), ControllerID: "ctl-2", Category: CategoryState})
	second.Close()

	info2, _ := os.Stat(path)
	if info2.Size() <= info1.Size() {
		t.Errorf("file did not grow: before=%d after=%d", info1.Size(), info2.Size())
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), ControllerID: "late"})

	info, _ := os.Stat(path)
	if info.Size() != 0 {
		t.Errorf("file size = %d after closed Log, want 0", info.Size())
	}
}

func TestFileLoggerConcurrentLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				logger.Log(Event{
					Timestamp:    time.Now(),
					ControllerID: "ctl",
					Layer:        LayerCallback,
					Category:     CategoryNotification,
					Notification: &NotificationEvent{Kind: NotificationStateChanged, State: "ACTIVE"},
				})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		count++
	}
	if count != 200 {
		t.Errorf("read %d events, want 200", count)
	}
}

func TestFileLoggerStampsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	event := Event{
		Timestamp:    time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC),
		ControllerID: "ctl-1",
		Layer:        LayerController,
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{Entity: StateEntityController, OldState: "OPEN", NewState: "CLOSED"},
	}
	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read capture file: %v", err)
	}

	event.Version = version.Current
	want, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("file bytes differ from EncodeEvent of the stamped event:\n got %x\nwant %x", data, want)
	}
}

func TestFileLoggerKeepsExistingVersion(t *testing.T) {
	path := createTestCapture(t, []Event{
		{Timestamp: time.Now(), ControllerID: "ctl-1", Category: CategoryState, Version: "0.1"},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 1 || read[0].Version != "0.1" {
		t.Fatalf("got %+v, want one event with version 0.1", read)
	}
}
