// Package session controls a single audio session through its native
// session-control object.
//
// A Controller wraps a native handle (see Control) and exposes the session's
// state, display name, icon path, grouping parameter and, when the native
// object supports the extended interface, its identifiers and owning
// process. Secondary capabilities are probed once when the Controller is
// built: MeterInformation for peak levels and SimpleVolume for volume and
// mute. Notifications are delivered to an EventHandler registered with
// RegisterEventClient.
//
// Native failures surface as *NativeError, which carries the operation name
// and raw status:
//
//	name, err := ctrl.DisplayName()
//	if errors.Is(err, session.ErrNativeCall) {
//		status, _ := session.StatusOf(err)
//		...
//	}
//
// Every native call can be captured to a pkg/log Logger (WithEventLogger)
// and is counted through OpenTelemetry (WithMeterProvider).
package session
