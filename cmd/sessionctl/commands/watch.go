package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// RunWatch subscribes to every selected session and prints notifications
// until ctx is done.
func RunWatch(ctx context.Context, env *Env) error {
	entries, err := env.Select()
	if err != nil {
		return err
	}
	defer env.CloseAll(entries)

	if len(entries) == 0 {
		return ErrNoMatch
	}

	out := &lockedWriter{w: env.Out}
	var subscribed []Entry
	for _, entry := range entries {
		h := watchHandler(out, entry.Snapshot.Label())
		if err := entry.Controller.RegisterEventClient(h); err != nil {
			env.logger().Warn("subscribe failed",
				slog.String("session", entry.Snapshot.Label()),
				slog.String("error", err.Error()))
			continue
		}
		subscribed = append(subscribed, entry)
	}
	if len(subscribed) == 0 {
		return fmt.Errorf("could not subscribe to any of %d sessions", len(entries))
	}
	fmt.Fprintf(out, "watching %d session(s), press Ctrl+C to stop\n", len(subscribed))

	<-ctx.Done()

	for _, entry := range subscribed {
		if err := entry.Controller.UnregisterEventClient(nil); err != nil {
			env.logger().Warn("unsubscribe failed",
				slog.String("session", entry.Snapshot.Label()),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func watchHandler(out io.Writer, label string) session.EventHandler {
	line := func(kind, detail string) {
		fmt.Fprintf(out, "%s  %-24s %-28s %s\n", time.Now().Format("15:04:05.000"), label, kind, detail)
	}
	return session.EventHandlerFuncs{
		VolumeChanged: func(volume float32, muted bool) {
			line("VOLUME_CHANGED", fmt.Sprintf("volume=%.0f%% muted=%t", volume*100, muted))
		},
		DisplayNameChanged: func(name string) {
			line("DISPLAY_NAME_CHANGED", fmt.Sprintf("name=%q", name))
		},
		IconPathChanged: func(path string) {
			line("ICON_PATH_CHANGED", fmt.Sprintf("path=%q", path))
		},
		ChannelVolumeChanged: func(channelCount uint32, volumes []float32, changedChannel uint32) {
			levels := make([]string, len(volumes))
			for i, v := range volumes {
				levels[i] = fmt.Sprintf("%.0f%%", v*100)
			}
			line("CHANNEL_VOLUME_CHANGED", fmt.Sprintf("channels=%d changed=%d levels=[%s]",
				channelCount, changedChannel, strings.Join(levels, " ")))
		},
		GroupingParamChanged: func(groupingID uuid.UUID) {
			line("GROUPING_PARAM_CHANGED", "group="+groupingID.String())
		},
		StateChanged: func(state session.State) {
			line("STATE_CHANGED", "state="+state.String())
		},
		SessionDisconnected: func(reason session.DisconnectReason) {
			line("SESSION_DISCONNECTED", "reason="+reason.String())
		},
	}
}

// lockedWriter serializes writes from notification threads.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
