package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/wasapi-go/sessionctl/pkg/version"
)

// FileLogger appends events to a capture file.
// It is safe for concurrent use, which matters because notifications are
// delivered on audio subsystem threads.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644 when it
// does not exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Log appends the event, stamping it with the current version unless it
// already carries one. Encoding errors are dropped; capture never fails the
// operation being captured.
func (l *FileLogger) Log(event Event) {
	if event.Version == "" {
		event.Version = version.Current
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	_ = l.encoder.Encode(event)
}

// Close closes the file. Later calls to Log and Close do nothing.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
