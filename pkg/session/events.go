package session

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

// EventHandler receives session notifications.
//
// Methods are invoked on whatever thread the audio subsystem delivers the
// notification on, never on the goroutine that registered the handler.
// Implementations must be safe for that and should return quickly.
type EventHandler interface {
	OnVolumeChanged(volume float32, muted bool)
	OnDisplayNameChanged(name string)
	OnIconPathChanged(path string)
	OnChannelVolumeChanged(channelCount uint32, volumes []float32, changedChannel uint32)
	OnGroupingParamChanged(groupingID uuid.UUID)
	OnStateChanged(state State)
	OnSessionDisconnected(reason DisconnectReason)
}

// EventHandlerFuncs adapts plain functions to EventHandler. Nil fields are
// skipped.
type EventHandlerFuncs struct {
	VolumeChanged        func(volume float32, muted bool)
	DisplayNameChanged   func(name string)
	IconPathChanged      func(path string)
	ChannelVolumeChanged func(channelCount uint32, volumes []float32, changedChannel uint32)
	GroupingParamChanged func(groupingID uuid.UUID)
	StateChanged         func(state State)
	SessionDisconnected  func(reason DisconnectReason)
}

func (f EventHandlerFuncs) OnVolumeChanged(volume float32, muted bool) {
	if f.VolumeChanged != nil {
		f.VolumeChanged(volume, muted)
	}
}

func (f EventHandlerFuncs) OnDisplayNameChanged(name string) {
	if f.DisplayNameChanged != nil {
		f.DisplayNameChanged(name)
	}
}

func (f EventHandlerFuncs) OnIconPathChanged(path string) {
	if f.IconPathChanged != nil {
		f.IconPathChanged(path)
	}
}

func (f EventHandlerFuncs) OnChannelVolumeChanged(channelCount uint32, volumes []float32, changedChannel uint32) {
	if f.ChannelVolumeChanged != nil {
		f.ChannelVolumeChanged(channelCount, volumes, changedChannel)
	}
}

func (f EventHandlerFuncs) OnGroupingParamChanged(groupingID uuid.UUID) {
	if f.GroupingParamChanged != nil {
		f.GroupingParamChanged(groupingID)
	}
}

func (f EventHandlerFuncs) OnStateChanged(state State) {
	if f.StateChanged != nil {
		f.StateChanged(state)
	}
}

func (f EventHandlerFuncs) OnSessionDisconnected(reason DisconnectReason) {
	if f.SessionDisconnected != nil {
		f.SessionDisconnected(reason)
	}
}

var _ EventHandler = EventHandlerFuncs{}

// EventsCallback is the adapter registered with the native side. It
// implements Notifications and forwards every invocation to an EventHandler.
//
// It holds no reference to the Controller that created it.
type EventsCallback struct {
	handler EventHandler
	rec     *recorder
}

// NewEventsCallback returns an adapter forwarding to handler with capture
// and metrics disabled. Controllers build their own through
// RegisterEventClient.
func NewEventsCallback(handler EventHandler) *EventsCallback {
	return &EventsCallback{handler: handler, rec: noopRecorder()}
}

// Handler returns the handler notifications are forwarded to.
func (cb *EventsCallback) Handler() EventHandler {
	return cb.handler
}

// dispatch forwards one notification. A panicking handler is reported to
// the native side as E_FAIL instead of unwinding through a foreign stack
// frame.
func (cb *EventsCallback) dispatch(n *log.NotificationEvent, forward func()) (status Status) {
	kind := n.Kind.String()
	cb.rec.metrics.recordNotification(kind)
	cb.rec.captureNotification(n)

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("event handler panicked: %v", r)
			cb.rec.logger.Error(msg,
				slog.String("controller_id", cb.rec.controllerID),
				slog.String("notification", kind),
			)
			cb.rec.captureError(log.LayerCallback, kind, msg, StatusFail)
			status = StatusFail
		}
	}()

	forward()
	return StatusOK
}

// OnDisplayNameChanged implements Notifications.
func (cb *EventsCallback) OnDisplayNameChanged(name string, eventContext uuid.UUID) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:         log.NotificationDisplayNameChanged,
		DisplayName:  name,
		EventContext: contextString(eventContext),
	}, func() { cb.handler.OnDisplayNameChanged(name) })
}

// OnIconPathChanged implements Notifications.
func (cb *EventsCallback) OnIconPathChanged(path string, eventContext uuid.UUID) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:         log.NotificationIconPathChanged,
		IconPath:     path,
		EventContext: contextString(eventContext),
	}, func() { cb.handler.OnIconPathChanged(path) })
}

// OnSimpleVolumeChanged implements Notifications.
func (cb *EventsCallback) OnSimpleVolumeChanged(volume float32, muted bool, eventContext uuid.UUID) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:         log.NotificationSimpleVolumeChanged,
		Volume:       &volume,
		Muted:        &muted,
		EventContext: contextString(eventContext),
	}, func() { cb.handler.OnVolumeChanged(volume, muted) })
}

// OnChannelVolumeChanged implements Notifications.
func (cb *EventsCallback) OnChannelVolumeChanged(volumes []float32, changedChannel uint32, eventContext uuid.UUID) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:           log.NotificationChannelVolumeChanged,
		ChannelVolumes: volumes,
		ChangedChannel: &changedChannel,
		EventContext:   contextString(eventContext),
	}, func() { cb.handler.OnChannelVolumeChanged(uint32(len(volumes)), volumes, changedChannel) })
}

// OnGroupingParamChanged implements Notifications.
func (cb *EventsCallback) OnGroupingParamChanged(groupingID, eventContext uuid.UUID) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:          log.NotificationGroupingParamChanged,
		GroupingParam: groupingID.String(),
		EventContext:  contextString(eventContext),
	}, func() { cb.handler.OnGroupingParamChanged(groupingID) })
}

// OnStateChanged implements Notifications.
func (cb *EventsCallback) OnStateChanged(state State) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:  log.NotificationStateChanged,
		State: state.String(),
	}, func() { cb.handler.OnStateChanged(state) })
}

// OnSessionDisconnected implements Notifications.
func (cb *EventsCallback) OnSessionDisconnected(reason DisconnectReason) Status {
	return cb.dispatch(&log.NotificationEvent{
		Kind:             log.NotificationSessionDisconnected,
		DisconnectReason: reason.String(),
	}, func() { cb.handler.OnSessionDisconnected(reason) })
}

var _ Notifications = (*EventsCallback)(nil)

func contextString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
