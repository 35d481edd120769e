// Package wca binds pkg/session to the Windows Core Audio session API
// through github.com/moutend/go-wca.
//
// SessionControl wraps an IAudioSessionControl pointer and implements
// session.Control. Secondary interfaces (IAudioSessionControl2,
// IAudioMeterInformation, ISimpleAudioVolume) are obtained on demand through
// QueryInterface and released together with the session. Notifications are
// delivered through a Go-implemented IAudioSessionEvents object.
//
// Enumerator walks the sessions of the default endpoint and returns them as
// session.Controller values. Everything except the GUID and DataFlow helpers
// is only available on Windows.
package wca
