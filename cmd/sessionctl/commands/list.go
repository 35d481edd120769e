package commands

import (
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

// RunList prints every selected session.
func RunList(env *Env, format string) error {
	entries, err := env.Select()
	if err != nil {
		return err
	}
	defer env.CloseAll(entries)

	return sessioninfo.Format(env.Out, snapshots(entries), format)
}

// RunShow prints the full details of the selected sessions, as YAML unless
// another format is given. It fails when nothing matches.
func RunShow(env *Env, format string) error {
	entries, err := env.Select()
	if err != nil {
		return err
	}
	defer env.CloseAll(entries)

	if len(entries) == 0 {
		return ErrNoMatch
	}
	if format == "" || format == sessioninfo.FormatText {
		format = sessioninfo.FormatYAML
	}
	return sessioninfo.Format(env.Out, snapshots(entries), format)
}
