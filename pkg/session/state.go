package session

// State is the activity state reported for an audio session.
type State uint32

const (
	// StateInactive means the session has no active streams.
	StateInactive State = 0

	// StateActive means at least one stream in the session is running.
	StateActive State = 1

	// StateExpired means the session is gone. A closed Controller reports it
	// without asking the native side.
	StateExpired State = 2
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "INACTIVE"
	case StateActive:
		return "ACTIVE"
	case StateExpired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// DisconnectReason explains an OnSessionDisconnected notification.
type DisconnectReason uint32

const (
	DisconnectDeviceRemoval         DisconnectReason = 0
	DisconnectServerShutdown        DisconnectReason = 1
	DisconnectFormatChanged         DisconnectReason = 2
	DisconnectSessionLogoff         DisconnectReason = 3
	DisconnectSessionDisconnected   DisconnectReason = 4
	DisconnectExclusiveModeOverride DisconnectReason = 5
)

// String returns the reason name.
func (r DisconnectReason) String() string {
	switch r {
	case DisconnectDeviceRemoval:
		return "DEVICE_REMOVAL"
	case DisconnectServerShutdown:
		return "SERVER_SHUTDOWN"
	case DisconnectFormatChanged:
		return "FORMAT_CHANGED"
	case DisconnectSessionLogoff:
		return "SESSION_LOGOFF"
	case DisconnectSessionDisconnected:
		return "SESSION_DISCONNECTED"
	case DisconnectExclusiveModeOverride:
		return "EXCLUSIVE_MODE_OVERRIDE"
	default:
		return "UNKNOWN"
	}
}
