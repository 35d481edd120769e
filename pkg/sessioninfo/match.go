package sessioninfo

import "strings"

// Selector picks sessions by owner and name. The zero value matches every
// session except the system sounds session.
type Selector struct {
	// ProcessID, when non-zero, must equal the owning process id.
	ProcessID uint32 `yaml:"process_id" json:"process_id,omitempty"`

	// NameContains, when set, must be a case-insensitive substring of the
	// display name or the process name.
	NameContains string `yaml:"name_contains" json:"name_contains,omitempty"`

	// IncludeSystemSounds admits the system sounds session.
	IncludeSystemSounds bool `yaml:"include_system_sounds" json:"include_system_sounds"`
}

// Match reports whether s satisfies sel.
func Match(s Snapshot, sel Selector) bool {
	if s.SystemSounds && !sel.IncludeSystemSounds {
		return false
	}
	if sel.ProcessID != 0 && s.ProcessID != sel.ProcessID {
		return false
	}
	if sel.NameContains != "" {
		needle := strings.ToLower(sel.NameContains)
		if !strings.Contains(strings.ToLower(s.DisplayName), needle) &&
			!strings.Contains(strings.ToLower(s.ProcessName), needle) {
			return false
		}
	}
	return true
}

// Filter returns the snapshots matching sel, in order.
func Filter(snaps []Snapshot, sel Selector) []Snapshot {
	var out []Snapshot
	for _, s := range snaps {
		if Match(s, sel) {
			out = append(out, s)
		}
	}
	return out
}
