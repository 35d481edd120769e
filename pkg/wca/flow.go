package wca

import (
	"fmt"
	"strings"
)

// DataFlow is an endpoint direction (EDataFlow).
type DataFlow uint32

const (
	FlowRender  DataFlow = 0
	FlowCapture DataFlow = 1
)

// String returns the flow name.
func (f DataFlow) String() string {
	switch f {
	case FlowRender:
		return "render"
	case FlowCapture:
		return "capture"
	default:
		return "unknown"
	}
}

// ParseDataFlow accepts "render" and "capture", case-insensitively.
// The empty string is render.
func ParseDataFlow(s string) (DataFlow, error) {
	switch strings.ToLower(s) {
	case "", "render":
		return FlowRender, nil
	case "capture":
		return FlowCapture, nil
	default:
		return FlowRender, fmt.Errorf("unknown data flow %q", s)
	}
}
