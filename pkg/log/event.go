package log

import (
	"time"
)

// Event is one captured session event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ControllerID identifies the session controller that produced the event (UUID).
	ControllerID string `cbor:"2,keyasint"`

	// Direction of the interaction relative to the native audio subsystem.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Label is a caller-supplied description of the session, e.g. "Spotify (pid 4120)".
	Label string `cbor:"6,keyasint,omitempty"`

	// Version of sessionctl that wrote the event, stamped by FileLogger.
	// Events without one predate versioned captures.
	Version string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Call         *CallEvent         `cbor:"10,keyasint,omitempty"` // Native layer
	Notification *NotificationEvent `cbor:"11,keyasint,omitempty"` // Callback layer
	StateChange  *StateChangeEvent  `cbor:"12,keyasint,omitempty"` // Controller layer
	Error        *ErrorEventData    `cbor:"13,keyasint,omitempty"` // Any layer
}

// Direction tells whether an event flowed into or out of the host.
type Direction uint8

const (
	// DirectionIn is native -> host (notifications, returned results).
	DirectionIn Direction = 0
	// DirectionOut is host -> native (calls).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates where an event was captured.
type Layer uint8

const (
	// LayerNative is the boundary with the native session object.
	LayerNative Layer = 0
	// LayerCallback is the notification adapter invoked by the audio subsystem.
	LayerCallback Layer = 1
	// LayerController is the session controller itself.
	LayerController Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerNative:
		return "NATIVE"
	case LayerCallback:
		return "CALLBACK"
	case LayerController:
		return "CONTROLLER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCall is a native call and its status.
	CategoryCall Category = 0
	// CategoryNotification is a pushed session notification.
	CategoryNotification Category = 1
	// CategoryState is a lifecycle transition.
	CategoryState Category = 2
	// CategoryError is a failure.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCall:
		return "CALL"
	case CategoryNotification:
		return "NOTIFICATION"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CallEvent captures one native call.
type CallEvent struct {
	// Op is the native method name, e.g. "GetDisplayName".
	Op string `cbor:"1,keyasint"`

	// Status is the raw HRESULT the call returned.
	Status uint32 `cbor:"2,keyasint"`

	// Duration of the call. Stored as nanoseconds.
	Duration time.Duration `cbor:"3,keyasint,omitempty"`
}

// Failed reports whether the captured status is a failure code.
func (c *CallEvent) Failed() bool {
	return c.Status&0x80000000 != 0
}

// NotificationKind identifies which session notification fired.
type NotificationKind uint8

const (
	NotificationDisplayNameChanged   NotificationKind = 0
	NotificationIconPathChanged      NotificationKind = 1
	NotificationSimpleVolumeChanged  NotificationKind = 2
	NotificationChannelVolumeChanged NotificationKind = 3
	NotificationGroupingParamChanged NotificationKind = 4
	NotificationStateChanged         NotificationKind = 5
	NotificationSessionDisconnected  NotificationKind = 6
)

// String returns the notification name.
func (k NotificationKind) String() string {
	switch k {
	case NotificationDisplayNameChanged:
		return "DISPLAY_NAME_CHANGED"
	case NotificationIconPathChanged:
		return "ICON_PATH_CHANGED"
	case NotificationSimpleVolumeChanged:
		return "SIMPLE_VOLUME_CHANGED"
	case NotificationChannelVolumeChanged:
		return "CHANNEL_VOLUME_CHANGED"
	case NotificationGroupingParamChanged:
		return "GROUPING_PARAM_CHANGED"
	case NotificationStateChanged:
		return "STATE_CHANGED"
	case NotificationSessionDisconnected:
		return "SESSION_DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// NotificationEvent captures a notification pushed by the audio subsystem.
// Only the fields relevant to Kind are populated.
type NotificationEvent struct {
	Kind NotificationKind `cbor:"1,keyasint"`

	DisplayName string `cbor:"2,keyasint,omitempty"`
	IconPath    string `cbor:"3,keyasint,omitempty"`

	// Volume and Muted are set for SIMPLE_VOLUME_CHANGED.
	Volume *float32 `cbor:"4,keyasint,omitempty"`
	Muted  *bool    `cbor:"5,keyasint,omitempty"`

	// ChannelVolumes and ChangedChannel are set for CHANNEL_VOLUME_CHANGED.
	ChannelVolumes []float32 `cbor:"6,keyasint,omitempty"`
	ChangedChannel *uint32   `cbor:"7,keyasint,omitempty"`

	GroupingParam    string `cbor:"8,keyasint,omitempty"`
	State            string `cbor:"9,keyasint,omitempty"`
	DisconnectReason string `cbor:"10,keyasint,omitempty"`

	// EventContext is the opaque context GUID supplied by whoever caused the change.
	EventContext string `cbor:"11,keyasint,omitempty"`
}

// StateChangeEvent captures controller lifecycle transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntityController is the controller's open/closed lifecycle.
	StateEntityController StateEntity = 0
	// StateEntitySubscription is the event subscription.
	StateEntitySubscription StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityController:
		return "CONTROLLER"
	case StateEntitySubscription:
		return "SUBSCRIPTION"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Status is the native status code, when the error came from a native call.
	Status *uint32 `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// TypeLabel returns a short name for the payload an event carries.
func (e Event) TypeLabel() string {
	switch {
	case e.Call != nil:
		return e.Call.Op
	case e.Notification != nil:
		return e.Notification.Kind.String()
	case e.StateChange != nil:
		return "State"
	case e.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}
