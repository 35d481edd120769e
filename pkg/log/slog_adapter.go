package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes captured events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single "session" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("controller_id", event.ControllerID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Label != "" {
		attrs = append(attrs, slog.String("label", event.Label))
	}

	switch {
	case event.Call != nil:
		attrs = append(attrs,
			slog.String("op", event.Call.Op),
			slog.String("status", fmt.Sprintf("0x%08X", event.Call.Status)),
			slog.Duration("duration", event.Call.Duration),
		)
	case event.Notification != nil:
		n := event.Notification
		attrs = append(attrs, slog.String("notification", n.Kind.String()))
		if n.DisplayName != "" {
			attrs = append(attrs, slog.String("display_name", n.DisplayName))
		}
		if n.IconPath != "" {
			attrs = append(attrs, slog.String("icon_path", n.IconPath))
		}
		if n.Volume != nil {
			attrs = append(attrs, slog.Float64("volume", float64(*n.Volume)))
		}
		if n.Muted != nil {
			attrs = append(attrs, slog.Bool("muted", *n.Muted))
		}
		if n.ChangedChannel != nil {
			attrs = append(attrs,
				slog.Uint64("changed_channel", uint64(*n.ChangedChannel)),
				slog.Int("channels", len(n.ChannelVolumes)),
			)
		}
		if n.GroupingParam != "" {
			attrs = append(attrs, slog.String("grouping_param", n.GroupingParam))
		}
		if n.State != "" {
			attrs = append(attrs, slog.String("state", n.State))
		}
		if n.DisconnectReason != "" {
			attrs = append(attrs, slog.String("disconnect_reason", n.DisconnectReason))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Status != nil {
			attrs = append(attrs, slog.String("error_status", fmt.Sprintf("0x%08X", *event.Error.Status)))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
