package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/wasapi-go/sessionctl/pkg/version"
)

// ErrIncompatibleVersion is returned by Reader.Next for an event written by a
// release with a different major version.
var ErrIncompatibleVersion = errors.New("capture written by an incompatible version")

func checkVersion(written string) error {
	if written == "" {
		return nil
	}
	v, err := version.Parse(written)
	if err != nil {
		return fmt.Errorf("capture event version: %w", err)
	}
	if current := version.Release(); !current.Compatible(v) {
		return fmt.Errorf("%w: written by %s, reader is %s", ErrIncompatibleVersion, v, current)
	}
	return nil
}

// Filter selects events from a capture file.
// Zero-valued fields match everything.
type Filter struct {
	ControllerID string
	Label        string

	Direction *Direction
	Layer     *Layer
	Category  *Category

	// Notification restricts to one notification kind.
	Notification *NotificationKind

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

func (f *Filter) matches(event Event) bool {
	if f.ControllerID != "" && event.ControllerID != f.ControllerID {
		return false
	}
	if f.Label != "" && event.Label != f.Label {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.Notification != nil && (event.Notification == nil || event.Notification.Kind != *f.Notification) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams events out of a capture file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens path and yields every event in it.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens path and yields only events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
// Events from an incompatible version fail with ErrIncompatibleVersion.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if err := checkVersion(event.Version); err != nil {
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
