// Package commands implements the sessionctl-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer      *log.Layer
	Direction  *log.Direction
	Category   *log.Category
	FailedOnly bool
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [ctl:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [ctl:%s] %-3s %s %s", ts, shortenID(event.ControllerID),
		event.Direction.String(), event.Layer.String(), event.TypeLabel())
	if event.Label != "" {
		fmt.Fprintf(w, " (%s)", event.Label)
	}
	fmt.Fprintln(w)

	switch {
	case event.Call != nil:
		formatCallDetails(w, event.Call)
	case event.Notification != nil:
		formatNotificationDetails(w, event.Notification)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a controller ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatCallDetails(w io.Writer, call *log.CallEvent) {
	fmt.Fprintf(w, "  Status: 0x%08X", call.Status)
	if call.Failed() {
		fmt.Fprint(w, " (failed)")
	}
	fmt.Fprintln(w)
	if call.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(call.Duration))
	}
}

func formatNotificationDetails(w io.Writer, n *log.NotificationEvent) {
	switch n.Kind {
	case log.NotificationDisplayNameChanged:
		fmt.Fprintf(w, "  DisplayName: %q\n", n.DisplayName)
	case log.NotificationIconPathChanged:
		fmt.Fprintf(w, "  IconPath: %q\n", n.IconPath)
	case log.NotificationSimpleVolumeChanged:
		if n.Volume != nil {
			fmt.Fprintf(w, "  Volume: %.3f\n", *n.Volume)
		}
		if n.Muted != nil {
			fmt.Fprintf(w, "  Muted: %t\n", *n.Muted)
		}
	case log.NotificationChannelVolumeChanged:
		fmt.Fprintf(w, "  Channels: %v\n", n.ChannelVolumes)
		if n.ChangedChannel != nil {
			fmt.Fprintf(w, "  Changed: %d\n", *n.ChangedChannel)
		}
	case log.NotificationGroupingParamChanged:
		fmt.Fprintf(w, "  GroupingParam: %s\n", n.GroupingParam)
	case log.NotificationStateChanged:
		fmt.Fprintf(w, "  State: %s\n", n.State)
	case log.NotificationSessionDisconnected:
		fmt.Fprintf(w, "  Reason: %s\n", n.DisconnectReason)
	}
	if n.EventContext != "" {
		fmt.Fprintf(w, "  EventContext: %s\n", n.EventContext)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Status != nil {
		fmt.Fprintf(w, "  Status: 0x%08X\n", *err.Status)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func (f ViewFilter) matches(e log.Event) bool {
	if f.Layer != nil && e.Layer != *f.Layer {
		return false
	}
	if f.Direction != nil && e.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	if f.FailedOnly && e.Error == nil && (e.Call == nil || !e.Call.Failed()) {
		return false
	}
	return true
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "native":
		return log.LayerNative, nil
	case "callback":
		return log.LayerCallback, nil
	case "controller":
		return log.LayerController, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be native, callback, or controller)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "call":
		return log.CategoryCall, nil
	case "notification":
		return log.CategoryNotification, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be call, notification, state, or error)", s)
	}
}

func parseNotification(s string) (log.NotificationKind, error) {
	want := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	for k := log.NotificationDisplayNameChanged; k <= log.NotificationSessionDisconnected; k++ {
		if k.String() == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid notification: %s", s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if filter.matches(event) {
			formatEvent(output, event)
		}
	}

	return nil
}
