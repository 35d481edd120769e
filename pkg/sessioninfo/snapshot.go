// Package sessioninfo builds printable descriptions of audio sessions.
package sessioninfo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// Snapshot is a point-in-time description of one session.
type Snapshot struct {
	ControllerID  string `yaml:"controller_id" json:"controller_id"`
	DisplayName   string `yaml:"display_name" json:"display_name"`
	IconPath      string `yaml:"icon_path,omitempty" json:"icon_path,omitempty"`
	State         string `yaml:"state" json:"state"`
	GroupingParam string `yaml:"grouping_param,omitempty" json:"grouping_param,omitempty"`

	// Set only when the session exposes the extended control interface.
	SessionIdentifier  string `yaml:"session_identifier,omitempty" json:"session_identifier,omitempty"`
	InstanceIdentifier string `yaml:"instance_identifier,omitempty" json:"instance_identifier,omitempty"`
	ProcessID          uint32 `yaml:"process_id,omitempty" json:"process_id,omitempty"`
	ProcessName        string `yaml:"process_name,omitempty" json:"process_name,omitempty"`
	SystemSounds       bool   `yaml:"system_sounds,omitempty" json:"system_sounds,omitempty"`

	Volume *float32 `yaml:"volume,omitempty" json:"volume,omitempty"`
	Muted  *bool    `yaml:"muted,omitempty" json:"muted,omitempty"`
	Peak   *float32 `yaml:"peak,omitempty" json:"peak,omitempty"`
}

// Name returns the best human-readable name for the session. Sessions
// without a display name fall back to the process name, then the controller id.
func (s Snapshot) Name() string {
	switch {
	case s.DisplayName != "":
		return s.DisplayName
	case s.SystemSounds:
		return "System Sounds"
	case s.ProcessName != "":
		return s.ProcessName
	default:
		return s.ControllerID
	}
}

// Label is the capture label for the session, e.g. "Spotify (pid 4120)".
func (s Snapshot) Label() string {
	if s.ProcessID == 0 {
		return s.Name()
	}
	return fmt.Sprintf("%s (pid %d)", s.Name(), s.ProcessID)
}

// Take reads every available property of c. Process names are looked up
// through resolver, which may be nil; lookup failures leave ProcessName
// empty. Native failures abort the snapshot.
func Take(c *session.Controller, resolver ProcessResolver) (Snapshot, error) {
	snap := Snapshot{ControllerID: c.ID().String()}

	state, err := c.State()
	if err != nil {
		return snap, err
	}
	snap.State = state.String()

	if snap.DisplayName, err = c.DisplayName(); err != nil {
		return snap, err
	}
	if snap.IconPath, err = c.IconPath(); err != nil {
		return snap, err
	}

	group, err := c.GroupingParam()
	if err != nil {
		return snap, err
	}
	if group != uuid.Nil {
		snap.GroupingParam = group.String()
	}

	if err := takeExtended(c, &snap, resolver); err != nil {
		return snap, err
	}

	if v := c.Volume(); v != nil {
		level, err := v.Volume()
		if err != nil {
			return snap, err
		}
		muted, err := v.Muted()
		if err != nil {
			return snap, err
		}
		snap.Volume, snap.Muted = &level, &muted
	}

	if m := c.Meter(); m != nil {
		peak, err := m.PeakValue()
		if err != nil {
			return snap, err
		}
		snap.Peak = &peak
	}

	return snap, nil
}

func takeExtended(c *session.Controller, snap *Snapshot, resolver ProcessResolver) error {
	id, err := c.SessionIdentifier()
	if errors.Is(err, session.ErrUnsupportedCapability) {
		return nil
	}
	if err != nil {
		return err
	}
	snap.SessionIdentifier = id

	if snap.InstanceIdentifier, err = c.SessionInstanceIdentifier(); err != nil {
		return err
	}
	if snap.ProcessID, err = c.ProcessID(); err != nil {
		return err
	}
	if snap.SystemSounds, err = c.IsSystemSoundsSession(); err != nil {
		return err
	}

	if resolver != nil && snap.ProcessID != 0 {
		if name, err := resolver.ProcessName(snap.ProcessID); err == nil {
			snap.ProcessName = name
		}
	}
	return nil
}
