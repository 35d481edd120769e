// Package version holds the sessionctl release version.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the version of this release.
const Current = "0.4"

// Version is a parsed "major.minor" version.
type Version struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
// Capture files are readable by any release of the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// Release returns Current parsed.
func Release() Version {
	v, err := Parse(Current)
	if err != nil {
		panic(err)
	}
	return v
}

// UserAgent returns "sessionctl/major.minor", used as the telemetry service
// version and in command banners.
func UserAgent() string {
	return "sessionctl/" + Current
}
