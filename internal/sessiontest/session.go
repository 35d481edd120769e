package sessiontest

import (
	"github.com/stretchr/testify/mock"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// ExtendedSession exposes Control and ExtendedControl through one value, so
// the extended capability is found by type assertion.
type ExtendedSession struct {
	*Control
	*Extended
}

// NewExtendedSession returns an ExtendedSession with fresh stubs.
func NewExtendedSession() *ExtendedSession {
	return &ExtendedSession{Control: NewControl(), Extended: &Extended{}}
}

// Session exposes every capability through one value.
type Session struct {
	*Control
	*Extended
	*Meter
	*Volume
}

// NewSession returns a Session with fresh stubs.
func NewSession() *Session {
	return &Session{
		Control:  NewControl(),
		Extended: &Extended{},
		Meter:    &Meter{},
		Volume:   &Volume{},
	}
}

// AssertExpectations checks every embedded stub.
func (s *Session) AssertExpectations(t mock.TestingT) bool {
	ok := s.Control.AssertExpectations(t)
	ok = s.Extended.AssertExpectations(t) && ok
	ok = s.Meter.AssertExpectations(t) && ok
	return s.Volume.AssertExpectations(t) && ok
}

// Querier exposes secondary capabilities only through QueryCapability, the
// way a COM binding discovers them.
type Querier struct {
	*Control
	Capabilities map[session.Capability]any
}

// NewQuerier returns a Querier without any secondary capabilities.
func NewQuerier() *Querier {
	return &Querier{Control: NewControl(), Capabilities: map[session.Capability]any{}}
}

// QueryCapability implements session.CapabilityQuerier.
func (q *Querier) QueryCapability(c session.Capability) (any, bool) {
	v, ok := q.Capabilities[c]
	return v, ok
}

var (
	_ session.ExtendedControl   = (*ExtendedSession)(nil)
	_ session.MeterCapability   = (*Session)(nil)
	_ session.VolumeCapability  = (*Session)(nil)
	_ session.CapabilityQuerier = (*Querier)(nil)
)
