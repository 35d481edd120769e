package session

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

// Native operation names, as recorded in errors, metrics and captures.
const (
	opGetState                = "GetState"
	opGetDisplayName          = "GetDisplayName"
	opSetDisplayName          = "SetDisplayName"
	opGetIconPath             = "GetIconPath"
	opSetIconPath             = "SetIconPath"
	opGetGroupingParam        = "GetGroupingParam"
	opSetGroupingParam        = "SetGroupingParam"
	opRegisterNotification    = "RegisterAudioSessionNotification"
	opUnregisterNotification  = "UnregisterAudioSessionNotification"
	opGetSessionIdentifier    = "GetSessionIdentifier"
	opGetSessionInstanceID    = "GetSessionInstanceIdentifier"
	opGetProcessID            = "GetProcessId"
	opIsSystemSoundsSession   = "IsSystemSoundsSession"
	opRelease                 = "Release"
	opGetPeakValue            = "GetPeakValue"
	opGetMeteringChannelCount = "GetMeteringChannelCount"
	opGetChannelsPeakValues   = "GetChannelsPeakValues"
	opGetMasterVolume         = "GetMasterVolume"
	opSetMasterVolume         = "SetMasterVolume"
	opGetMute                 = "GetMute"
	opSetMute                 = "SetMute"
)

// Controller and subscription state names used in captures.
const (
	stateOpen         = "OPEN"
	stateClosed       = "CLOSED"
	stateUnregistered = "UNREGISTERED"
	stateRegistered   = "REGISTERED"
)

// lifetime is shared with the meter and volume views so they can tell when
// their owner has been closed without holding a pointer back to it.
type lifetime struct {
	closed bool
}

// Controller is the control surface of one audio session.
//
// A Controller is not safe for concurrent use; callers sharing one must
// serialize access. Notifications are the exception: they are delivered to
// the registered EventHandler on audio subsystem threads.
//
// Close must be called when the Controller is no longer needed. A finalizer
// closes leaked controllers as a last resort, but its timing is not
// controllable.
type Controller struct {
	id  uuid.UUID
	rec *recorder

	native   Control
	extended ExtendedControl // nil when not supported
	meter    *MeterInformation
	volume   *SimpleVolume

	subscription *EventsCallback
	life         *lifetime
}

// New wraps native, which must be a valid handle. The Controller takes
// ownership of it.
//
// The extended, meter and volume capabilities are probed here, once. Probing
// cannot fail: a missing capability leaves the corresponding view nil.
func New(native Control, opts ...Option) *Controller {
	cfg := config{
		logger: slog.Default(),
		events: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}

	metrics, err := newInstruments(cfg.meterProvider)
	if err != nil {
		cfg.logger.Warn("session metrics disabled", slog.String("error", err.Error()))
		metrics = noopInstruments()
	}

	id := uuid.New()
	c := &Controller{
		id: id,
		rec: &recorder{
			controllerID: id.String(),
			logger:       cfg.logger,
			events:       cfg.events,
			metrics:      metrics,
		},
		native: native,
		life:   &lifetime{},
	}
	c.rec.setLabel(cfg.label)

	if ext, ok := probe[ExtendedControl](native, CapabilityExtendedControl); ok {
		c.extended = ext
	}
	if m, ok := probe[MeterCapability](native, CapabilityMeter); ok {
		c.meter = &MeterInformation{native: m, owner: c.life, rec: c.rec}
	}
	if v, ok := probe[VolumeCapability](native, CapabilityVolume); ok {
		c.volume = &SimpleVolume{native: v, owner: c.life, rec: c.rec}
	}

	cfg.logger.Debug("session controller created",
		slog.String("controller_id", c.rec.controllerID),
		slog.Bool("extended", c.extended != nil),
		slog.Bool("meter", c.meter != nil),
		slog.Bool("volume", c.volume != nil),
	)

	runtime.SetFinalizer(c, (*Controller).finalize)
	return c
}

// ID returns the identifier used to correlate this controller's captured
// events. It is local to the process and unrelated to the session identifier.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Label returns the label set with WithLabel.
func (c *Controller) Label() string {
	return c.rec.currentLabel()
}

// SetLabel replaces the label attached to captured events. It may be called
// while notifications are being delivered.
func (c *Controller) SetLabel(label string) {
	c.rec.setLabel(label)
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.life.closed
}

// SupportsExtendedControl reports whether the extended accessors are available.
func (c *Controller) SupportsExtendedControl() bool {
	return c.extended != nil
}

// Meter returns the peak-meter view, or nil when the session has none.
func (c *Controller) Meter() *MeterInformation {
	return c.meter
}

// Volume returns the simple volume view, or nil when the session has none.
func (c *Controller) Volume() *SimpleVolume {
	return c.volume
}

// Subscribed reports whether an event subscription is currently stored.
func (c *Controller) Subscribed() bool {
	return c.subscription != nil
}

// Close unregisters the active event subscription, if any, and releases the
// native handle. Only the first call does anything.
//
// The handle is released even when unregistering fails; that failure is
// still returned.
func (c *Controller) Close() error {
	if c.life.closed {
		return nil
	}
	c.life.closed = true
	runtime.SetFinalizer(c, nil)

	defer c.release()

	sub := c.subscription
	if sub == nil {
		return nil
	}
	c.subscription = nil

	if err := c.rec.call(opUnregisterNotification, func() Status {
		return c.native.UnregisterAudioSessionNotification(sub)
	}); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	c.rec.captureState(log.StateEntitySubscription, stateRegistered, stateUnregistered, "close")
	return nil
}

func (c *Controller) release() {
	c.native.Release()
	c.rec.captureCall(opRelease, StatusOK, 0)
	c.rec.captureState(log.StateEntityController, stateOpen, stateClosed, "")
	c.rec.logger.Debug("native session handle released",
		slog.String("controller_id", c.rec.controllerID),
	)
}

func (c *Controller) finalize() {
	logger := c.rec.logger
	logger.Warn("audio session controller was not closed; closing from finalizer",
		slog.String("controller_id", c.rec.controllerID),
	)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("finalizer close panicked",
				slog.String("controller_id", c.rec.controllerID),
				slog.Any("panic", r),
			)
		}
	}()
	if err := c.Close(); err != nil {
		logger.Error("finalizer close failed",
			slog.String("controller_id", c.rec.controllerID),
			slog.String("error", err.Error()),
		)
	}
}

// State returns the session state, or StateExpired once closed.
func (c *Controller) State() (State, error) {
	if c.life.closed {
		return StateExpired, nil
	}
	var state State
	if err := c.rec.call(opGetState, func() (s Status) {
		state, s = c.native.GetState()
		return s
	}); err != nil {
		return StateExpired, err
	}
	return state, nil
}

// DisplayName returns the session's display name, or "" once closed.
func (c *Controller) DisplayName() (string, error) {
	if c.life.closed {
		return "", nil
	}
	var name string
	if err := c.rec.call(opGetDisplayName, func() (s Status) {
		name, s = c.native.GetDisplayName()
		return s
	}); err != nil {
		return "", err
	}
	return name, nil
}

// SetDisplayName sets the session's display name. An empty name means "no
// change" and is ignored, as is any call after Close.
func (c *Controller) SetDisplayName(name string) error {
	if c.life.closed || name == "" {
		return nil
	}
	return c.rec.call(opSetDisplayName, func() Status {
		return c.native.SetDisplayName(name, uuid.Nil)
	})
}

// IconPath returns the session's icon resource path, or "" once closed.
func (c *Controller) IconPath() (string, error) {
	if c.life.closed {
		return "", nil
	}
	var path string
	if err := c.rec.call(opGetIconPath, func() (s Status) {
		path, s = c.native.GetIconPath()
		return s
	}); err != nil {
		return "", err
	}
	return path, nil
}

// SetIconPath sets the session's icon resource path. An empty path means "no
// change" and is ignored, as is any call after Close.
func (c *Controller) SetIconPath(path string) error {
	if c.life.closed || path == "" {
		return nil
	}
	return c.rec.call(opSetIconPath, func() Status {
		return c.native.SetIconPath(path, uuid.Nil)
	})
}

// SessionIdentifier returns the identifier shared by all instances of the
// session. It returns "" once closed and ErrUnsupportedCapability when the
// native object has no extended interface.
func (c *Controller) SessionIdentifier() (string, error) {
	if c.life.closed {
		return "", nil
	}
	if c.extended == nil {
		return "", fmt.Errorf("%s: %w", opGetSessionIdentifier, ErrUnsupportedCapability)
	}
	var id string
	if err := c.rec.call(opGetSessionIdentifier, func() (s Status) {
		id, s = c.extended.GetSessionIdentifier()
		return s
	}); err != nil {
		return "", err
	}
	return id, nil
}

// SessionInstanceIdentifier returns the identifier unique to this session
// instance. Closed and unsupported behave as for SessionIdentifier.
func (c *Controller) SessionInstanceIdentifier() (string, error) {
	if c.life.closed {
		return "", nil
	}
	if c.extended == nil {
		return "", fmt.Errorf("%s: %w", opGetSessionInstanceID, ErrUnsupportedCapability)
	}
	var id string
	if err := c.rec.call(opGetSessionInstanceID, func() (s Status) {
		id, s = c.extended.GetSessionInstanceIdentifier()
		return s
	}); err != nil {
		return "", err
	}
	return id, nil
}

// ProcessID returns the id of the process owning the session, or 0 once
// closed. Unsupported behaves as for SessionIdentifier.
func (c *Controller) ProcessID() (uint32, error) {
	if c.life.closed {
		return 0, nil
	}
	if c.extended == nil {
		return 0, fmt.Errorf("%s: %w", opGetProcessID, ErrUnsupportedCapability)
	}
	var pid uint32
	if err := c.rec.call(opGetProcessID, func() (s Status) {
		pid, s = c.extended.GetProcessId()
		return s
	}); err != nil {
		return 0, err
	}
	return pid, nil
}

// IsSystemSoundsSession reports whether this is the system sounds session.
// Only S_OK means yes; any other status, failures included, means no.
func (c *Controller) IsSystemSoundsSession() (bool, error) {
	if c.life.closed {
		return false, nil
	}
	if c.extended == nil {
		return false, fmt.Errorf("%s: %w", opIsSystemSoundsSession, ErrUnsupportedCapability)
	}
	status := c.rec.observe(opIsSystemSoundsSession, c.extended.IsSystemSoundsSession)
	return status == StatusOK, nil
}

// GroupingParam returns the session's grouping parameter, or uuid.Nil once
// closed.
func (c *Controller) GroupingParam() (uuid.UUID, error) {
	if c.life.closed {
		return uuid.Nil, nil
	}
	var id uuid.UUID
	if err := c.rec.call(opGetGroupingParam, func() (s Status) {
		id, s = c.native.GetGroupingParam()
		return s
	}); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// SetGroupingParam moves the session into the group identified by
// groupingID. eventContext is passed through to notification receivers.
func (c *Controller) SetGroupingParam(groupingID, eventContext uuid.UUID) error {
	if c.life.closed {
		return nil
	}
	return c.rec.call(opSetGroupingParam, func() Status {
		return c.native.SetGroupingParam(groupingID, eventContext)
	})
}

// RegisterEventClient subscribes handler to session notifications.
//
// The new subscription replaces any stored one. The replaced subscription
// is NOT unregistered from the native side and keeps receiving
// notifications; call UnregisterEventClient first to avoid that.
//
// The subscription is stored before the native registration is attempted,
// so it stays stored when registration fails and Close will try to
// unregister it.
func (c *Controller) RegisterEventClient(handler EventHandler) error {
	if c.life.closed {
		return nil
	}
	if handler == nil {
		return ErrNilHandler
	}

	oldState := stateUnregistered
	if c.subscription != nil {
		oldState = stateRegistered
		c.rec.logger.Warn("replacing event subscription without unregistering the previous one",
			slog.String("controller_id", c.rec.controllerID),
		)
	}

	cb := &EventsCallback{handler: handler, rec: c.rec}
	c.subscription = cb

	if err := c.rec.call(opRegisterNotification, func() Status {
		return c.native.RegisterAudioSessionNotification(cb)
	}); err != nil {
		return err
	}
	c.rec.captureState(log.StateEntitySubscription, oldState, stateRegistered, "")
	return nil
}

// UnregisterEventClient removes the stored subscription, whichever handler
// it wraps; the argument is not compared against it. It does nothing when no
// subscription is stored.
func (c *Controller) UnregisterEventClient(EventHandler) error {
	sub := c.subscription
	if sub == nil {
		return nil
	}
	if err := c.rec.call(opUnregisterNotification, func() Status {
		return c.native.UnregisterAudioSessionNotification(sub)
	}); err != nil {
		return err
	}
	c.subscription = nil
	c.rec.captureState(log.StateEntitySubscription, stateRegistered, stateUnregistered, "")
	return nil
}
