package session

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

// recorder instruments native calls for a controller and the views and
// callbacks it hands out. It holds no reference to the controller itself, so
// handing it out never keeps a leaked controller reachable.
type recorder struct {
	controllerID string
	label        atomic.Pointer[string] // read on notification threads
	logger       *slog.Logger
	events       log.Logger
	metrics      *instruments
}

func noopRecorder() *recorder {
	return &recorder{
		logger:  slog.Default(),
		events:  log.NoopLogger{},
		metrics: noopInstruments(),
	}
}

func (r *recorder) setLabel(label string) {
	r.label.Store(&label)
}

func (r *recorder) currentLabel() string {
	if p := r.label.Load(); p != nil {
		return *p
	}
	return ""
}

// call runs one native call, records it, and converts a failure status into
// a *NativeError.
func (r *recorder) call(op string, fn func() Status) error {
	status := r.observe(op, fn)
	if status.Failed() {
		err := &NativeError{Op: op, Status: status}
		r.captureError(log.LayerNative, op, err.Error(), status)
		return err
	}
	return nil
}

// observe runs fn and records its status without interpreting it.
func (r *recorder) observe(op string, fn func() Status) Status {
	start := time.Now()
	status := fn()
	elapsed := time.Since(start)

	r.metrics.recordCall(op, status, elapsed)
	r.captureCall(op, status, elapsed)
	r.logger.Debug("native session call",
		slog.String("controller_id", r.controllerID),
		slog.String("op", op),
		slog.String("status", status.String()),
		slog.Duration("elapsed", elapsed),
	)
	return status
}

func (r *recorder) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ControllerID: r.controllerID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		Label:        r.currentLabel(),
	}
}

func (r *recorder) captureCall(op string, status Status, elapsed time.Duration) {
	e := r.event(log.DirectionOut, log.LayerNative, log.CategoryCall)
	e.Call = &log.CallEvent{
		Op:       op,
		Status:   uint32(status),
		Duration: elapsed,
	}
	r.events.Log(e)
}

func (r *recorder) captureNotification(n *log.NotificationEvent) {
	e := r.event(log.DirectionIn, log.LayerCallback, log.CategoryNotification)
	e.Notification = n
	r.events.Log(e)
}

func (r *recorder) captureState(entity log.StateEntity, oldState, newState, reason string) {
	e := r.event(log.DirectionIn, log.LayerController, log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   entity,
		OldState: oldState,
		NewState: newState,
		Reason:   reason,
	}
	r.events.Log(e)
}

func (r *recorder) captureError(layer log.Layer, op, msg string, status Status) {
	code := uint32(status)
	e := r.event(log.DirectionIn, layer, log.CategoryError)
	e.Error = &log.ErrorEventData{
		Layer:   layer,
		Message: msg,
		Status:  &code,
		Context: op,
	}
	r.events.Log(e)
}
