// Package commands implements the sessionctl CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

// Source enumerates the sessions of the configured endpoint. Every call
// returns new controllers owned by the caller.
type Source interface {
	Sessions(opts ...session.Option) ([]*session.Controller, error)
}

// Env carries what every command needs.
type Env struct {
	Source   Source
	Options  []session.Option
	Selector sessioninfo.Selector
	Resolver sessioninfo.ProcessResolver
	Out      io.Writer
	Logger   *slog.Logger
}

// Entry is a selected session and the snapshot it was selected by.
type Entry struct {
	Controller *session.Controller
	Snapshot   sessioninfo.Snapshot
}

// ErrNoMatch is returned when the selector matches no session.
var ErrNoMatch = errors.New("no matching sessions")

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Select enumerates sessions and keeps the ones matching the selector.
// Unmatched controllers are closed. Sessions whose snapshot fails are
// skipped with a warning, since sessions can expire while being read.
func (e *Env) Select() ([]Entry, error) {
	controllers, err := e.Source.Sessions(e.Options...)
	if err != nil {
		return nil, fmt.Errorf("enumerate sessions: %w", err)
	}

	var entries []Entry
	for _, c := range controllers {
		snap, err := sessioninfo.Take(c, e.Resolver)
		if err != nil {
			e.logger().Warn("skipping session", slog.String("controller_id", c.ID().String()), slog.String("error", err.Error()))
			e.closeOne(c)
			continue
		}
		if !sessioninfo.Match(snap, e.Selector) {
			e.closeOne(c)
			continue
		}
		c.SetLabel(snap.Label())
		entries = append(entries, Entry{Controller: c, Snapshot: snap})
	}
	return entries, nil
}

// SelectOne is Select for commands that modify a session: the selector must
// match exactly one.
func (e *Env) SelectOne() (Entry, error) {
	entries, err := e.Select()
	if err != nil {
		return Entry{}, err
	}
	switch len(entries) {
	case 0:
		return Entry{}, ErrNoMatch
	case 1:
		return entries[0], nil
	default:
		e.CloseAll(entries)
		return Entry{}, fmt.Errorf("%d sessions match; narrow the selection with -pid or -name", len(entries))
	}
}

// CloseAll closes every controller in entries, logging failures.
func (e *Env) CloseAll(entries []Entry) {
	for _, entry := range entries {
		e.closeOne(entry.Controller)
	}
}

func (e *Env) closeOne(c *session.Controller) {
	if err := c.Close(); err != nil {
		e.logger().Warn("close session", slog.String("controller_id", c.ID().String()), slog.String("error", err.Error()))
	}
}

func snapshots(entries []Entry) []sessioninfo.Snapshot {
	snaps := make([]sessioninfo.Snapshot, 0, len(entries))
	for _, entry := range entries {
		snaps = append(snaps, entry.Snapshot)
	}
	return snaps
}
