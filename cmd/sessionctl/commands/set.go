package commands

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/pkg/session"
)

// ErrNoVolumeControl is returned when the session has no volume interface.
var ErrNoVolumeControl = errors.New("session has no volume control")

// RunSetName sets the display name of the one selected session.
func RunSetName(env *Env, name string) error {
	if name == "" {
		return errors.New("display name must not be empty")
	}
	return withOne(env, func(e Entry) error {
		return e.Controller.SetDisplayName(name)
	}, "display name set to %q", name)
}

// RunSetIcon sets the icon path of the one selected session.
func RunSetIcon(env *Env, path string) error {
	if path == "" {
		return errors.New("icon path must not be empty")
	}
	return withOne(env, func(e Entry) error {
		return e.Controller.SetIconPath(path)
	}, "icon path set to %q", path)
}

// RunSetGroup moves the one selected session into group. A nil group
// creates a fresh one.
func RunSetGroup(env *Env, group uuid.UUID) error {
	if group == uuid.Nil {
		group = uuid.New()
	}
	return withOne(env, func(e Entry) error {
		return e.Controller.SetGroupingParam(group, uuid.Nil)
	}, "grouping parameter set to %s", group)
}

// RunSetVolume sets the master volume of the one selected session, in
// percent.
func RunSetVolume(env *Env, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("volume %.1f%% out of range 0-100", percent)
	}
	return withOne(env, func(e Entry) error {
		v := e.Controller.Volume()
		if v == nil {
			return ErrNoVolumeControl
		}
		return v.SetVolume(float32(percent / 100))
	}, "volume set to %.0f%%", percent)
}

// RunMute mutes or unmutes the one selected session.
func RunMute(env *Env, muted bool) error {
	word := "unmuted"
	if muted {
		word = "muted"
	}
	return withOne(env, func(e Entry) error {
		v := e.Controller.Volume()
		if v == nil {
			return ErrNoVolumeControl
		}
		return v.SetMuted(muted)
	}, "%s", word)
}

func withOne(env *Env, apply func(Entry) error, format string, args ...any) error {
	entry, err := env.SelectOne()
	if err != nil {
		return err
	}
	defer env.CloseAll([]Entry{entry})

	if err := apply(entry); err != nil {
		if status, ok := session.StatusOf(err); ok {
			return fmt.Errorf("%s: %w (status %s)", entry.Snapshot.Label(), err, status)
		}
		return fmt.Errorf("%s: %w", entry.Snapshot.Label(), err)
	}
	fmt.Fprintf(env.Out, "%s: "+format+"\n", append([]any{entry.Snapshot.Label()}, args...)...)
	return nil
}
