package sessiontest

import (
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wasapi-go/sessionctl/pkg/log"
	"github.com/wasapi-go/sessionctl/pkg/session"
)

// Handler is a mock session.EventHandler.
type Handler struct{ mock.Mock }

func (h *Handler) OnVolumeChanged(volume float32, muted bool) { h.Called(volume, muted) }
func (h *Handler) OnDisplayNameChanged(name string)           { h.Called(name) }
func (h *Handler) OnIconPathChanged(path string)              { h.Called(path) }
func (h *Handler) OnChannelVolumeChanged(n uint32, volumes []float32, changed uint32) {
	h.Called(n, volumes, changed)
}
func (h *Handler) OnGroupingParamChanged(id uuid.UUID)              { h.Called(id) }
func (h *Handler) OnStateChanged(state session.State)               { h.Called(state) }
func (h *Handler) OnSessionDisconnected(r session.DisconnectReason) { h.Called(r) }

var _ session.EventHandler = (*Handler)(nil)

// EventLog is a log.Logger that keeps every event in memory.
type EventLog struct {
	mu     sync.Mutex
	events []log.Event
}

// Log implements log.Logger.
func (l *EventLog) Log(e log.Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// Events returns a copy of everything logged so far.
func (l *EventLog) Events() []log.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]log.Event(nil), l.events...)
}

// Calls returns the ops of captured native calls, in order.
func (l *EventLog) Calls() []string {
	var ops []string
	for _, e := range l.Events() {
		if e.Call != nil {
			ops = append(ops, e.Call.Op)
		}
	}
	return ops
}

// States returns the captured state transitions, in order.
func (l *EventLog) States() []log.StateChangeEvent {
	var out []log.StateChangeEvent
	for _, e := range l.Events() {
		if e.StateChange != nil {
			out = append(out, *e.StateChange)
		}
	}
	return out
}

// Errors returns the captured errors, in order.
func (l *EventLog) Errors() []log.ErrorEventData {
	var out []log.ErrorEventData
	for _, e := range l.Events() {
		if e.Error != nil {
			out = append(out, *e.Error)
		}
	}
	return out
}
