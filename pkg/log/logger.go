package log

// Logger receives captured session events.
// A nil Logger is never passed to implementations; use NoopLogger to disable capture.
type Logger interface {
	// Log records one event. Native notifications arrive on arbitrary OS
	// threads, so implementations must be safe for concurrent use and must
	// not block for long.
	Log(event Event)
}

// NoopLogger drops every event. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
