package session

// MeterInformation reads the session's peak meter. It is only valid while
// the owning Controller is open; afterwards every method returns ErrClosed.
type MeterInformation struct {
	native MeterCapability
	owner  *lifetime
	rec    *recorder
}

// PeakValue returns the peak sample value across all channels, in [0, 1].
func (m *MeterInformation) PeakValue() (float32, error) {
	if m.owner.closed {
		return 0, ErrClosed
	}
	var peak float32
	if err := m.rec.call(opGetPeakValue, func() (s Status) {
		peak, s = m.native.GetPeakValue()
		return s
	}); err != nil {
		return 0, err
	}
	return peak, nil
}

// ChannelCount returns the number of metered channels.
func (m *MeterInformation) ChannelCount() (uint32, error) {
	if m.owner.closed {
		return 0, ErrClosed
	}
	var n uint32
	if err := m.rec.call(opGetMeteringChannelCount, func() (s Status) {
		n, s = m.native.GetMeteringChannelCount()
		return s
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// ChannelPeakValues returns one peak value per metered channel.
func (m *MeterInformation) ChannelPeakValues() ([]float32, error) {
	n, err := m.ChannelCount()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []float32{}, nil
	}
	var peaks []float32
	if err := m.rec.call(opGetChannelsPeakValues, func() (s Status) {
		peaks, s = m.native.GetChannelsPeakValues(n)
		return s
	}); err != nil {
		return nil, err
	}
	return peaks, nil
}
