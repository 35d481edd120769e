package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wasapi-go/sessionctl/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Notifications     map[log.NotificationKind]int
	Controllers       map[string]*ControllerStats
	FailedCalls       int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ControllerStats holds statistics for a single session controller.
type ControllerStats struct {
	FirstSeen     time.Time
	LastSeen      time.Time
	Events        int
	Label         string
	Calls         int
	CallTime      time.Duration
	Notifications int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Notifications:     make(map[log.NotificationKind]int),
		Controllers:       make(map[string]*ControllerStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	ctl, ok := s.Controllers[event.ControllerID]
	if !ok {
		ctl = &ControllerStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Controllers[event.ControllerID] = ctl
	}
	ctl.Events++
	if event.Timestamp.After(ctl.LastSeen) {
		ctl.LastSeen = event.Timestamp
	}
	if event.Label != "" {
		ctl.Label = event.Label
	}

	if event.Call != nil {
		ctl.Calls++
		ctl.CallTime += event.Call.Duration
		if event.Call.Failed() {
			s.FailedCalls++
		}
	}
	if event.Notification != nil {
		ctl.Notifications++
		s.Notifications[event.Notification.Kind]++
	}
	if event.Error != nil {
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Audio Session Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerNative, log.LayerCallback, log.LayerController} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryCall, log.CategoryNotification, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Notifications) > 0 {
		fmt.Fprintln(w, "Notifications:")
		for k := log.NotificationDisplayNameChanged; k <= log.NotificationSessionDisconnected; k++ {
			if count := stats.Notifications[k]; count > 0 {
				fmt.Fprintf(w, "  %-24s %d\n", k.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Controllers: %d\n", len(stats.Controllers))
	if len(stats.Controllers) > 0 {
		type ctlInfo struct {
			id    string
			stats *ControllerStats
		}
		ctls := make([]ctlInfo, 0, len(stats.Controllers))
		for id, cs := range stats.Controllers {
			ctls = append(ctls, ctlInfo{id, cs})
		}
		sort.Slice(ctls, func(i, j int) bool {
			return ctls[i].stats.FirstSeen.Before(ctls[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range ctls {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(c.id), c.stats.Events, duration)
			if c.stats.Label != "" {
				fmt.Fprintf(w, "           Session: %s\n", c.stats.Label)
			}
			if c.stats.Calls > 0 {
				fmt.Fprintf(w, "           Calls: %d (total %s)\n", c.stats.Calls, formatDuration(c.stats.CallTime))
			}
			if c.stats.Notifications > 0 {
				fmt.Fprintf(w, "           Notifications: %d\n", c.stats.Notifications)
			}
		}
	}

	if stats.FailedCalls > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failed Calls: %d\n", stats.FailedCalls)
	}
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
