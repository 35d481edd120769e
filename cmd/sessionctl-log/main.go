// Command sessionctl-log is a tool for viewing and analyzing audio session
// capture files.
//
// Capture files are written by sessionctl when run with the -capture flag or
// with capture.path set in its configuration file.
//
// Usage:
//
//	sessionctl-log <command> [flags] <file.alog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSON or CSV format
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View only notifications
//	sessionctl-log view --category notification session.alog
//
//	# View failed native calls and errors
//	sessionctl-log view --failed session.alog
//
//	# Export to CSV
//	sessionctl-log export --format csv -o session.csv session.alog
//
//	# Keep one session's volume notifications
//	sessionctl-log filter --label "Spotify (pid 4120)" --notification simple_volume_changed -o spotify.alog session.alog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wasapi-go/sessionctl/cmd/sessionctl-log/commands"
)

const usage = `sessionctl-log - Audio Session Capture Analyzer

Usage:
  sessionctl-log <command> [flags] <file.alog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSON or CSV format
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "sessionctl-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis, argsUsage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `sessionctl-log %s - %s

Usage:
  sessionctl-log %s %s

Flags:
`, name, synopsis, name, argsUsage)
		fs.PrintDefaults()
	}
	return fs
}

// parsePath parses args and returns the single capture file argument.
func parsePath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View capture file in human-readable format", "[flags] <file.alog>")
	layer := fs.String("layer", "", "Filter by layer (native, callback, controller)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (call, notification, state, error)")
	failed := fs.Bool("failed", false, "Show only failed calls and errors")

	path := parsePath(fs, args)

	filter := commands.ViewFilter{FailedOnly: *failed}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export capture file to JSON or CSV format", "[flags] <file.alog>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parsePath(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter capture file and write to new file", "[flags] <file.alog>")
	output := fs.String("o", "", "Output file (required)")
	controllerID := fs.String("controller-id", "", "Filter by controller ID")
	label := fs.String("label", "", "Filter by session label")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (native, callback, controller)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (call, notification, state, error)")
	notification := fs.String("notification", "", "Filter by notification kind (e.g. state_changed)")

	path := parsePath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:       *output,
		ControllerID: *controllerID,
		Label:        *label,
		TimeStart:    *timeStart,
		TimeEnd:      *timeEnd,
		Layer:        *layer,
		Direction:    *direction,
		Category:     *category,
		Notification: *notification,
	}

	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the capture file", "<file.alog>")
	path := parsePath(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
