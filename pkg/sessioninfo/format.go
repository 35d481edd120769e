package sessioninfo

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Format writes snaps to w in the named format.
func Format(w io.Writer, snaps []Snapshot, format string) error {
	switch format {
	case "", FormatText:
		return formatText(w, snaps)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snaps); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snaps)
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
	}
}

func formatText(w io.Writer, snaps []Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPID\tSTATE\tVOLUME\tMUTED\tID")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name(),
			pidString(s),
			s.State,
			volumeString(s.Volume),
			mutedString(s.Muted),
			s.ControllerID[:min(8, len(s.ControllerID))],
		)
	}
	return tw.Flush()
}

func pidString(s Snapshot) string {
	if s.ProcessID == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", s.ProcessID)
}

func volumeString(v *float32) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}

func mutedString(m *bool) string {
	switch {
	case m == nil:
		return "-"
	case *m:
		return "yes"
	default:
		return "no"
	}
}
