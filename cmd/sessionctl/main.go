// Command sessionctl inspects and controls the audio sessions of the default
// Windows audio endpoint.
//
// Usage:
//
//	sessionctl <command> [flags] [args]
//
// Commands:
//
//	list       List sessions
//	show       Show every property of the selected sessions
//	set-name   Set the display name of one session
//	set-icon   Set the icon path of one session
//	set-group  Move one session into a grouping
//	volume     Set the master volume of one session, in percent
//	mute       Mute one session
//	unmute     Unmute one session
//	watch      Print session notifications until interrupted
//	shell      Start the interactive shell
//	version    Print the version
//
// Examples:
//
//	# List sessions on the capture endpoint
//	sessionctl list -flow capture
//
//	# Set Spotify to 30% and record the native calls
//	sessionctl volume -name spotify -capture volume.alog 30
//
//	# Follow notifications of one process
//	sessionctl watch -pid 4120
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/cmd/sessionctl/commands"
	"github.com/wasapi-go/sessionctl/cmd/sessionctl/interactive"
	"github.com/wasapi-go/sessionctl/pkg/version"
)

const usage = `sessionctl - Audio Session Controller

Usage:
  sessionctl <command> [flags] [args]

Commands:
  list       List sessions
  show       Show every property of the selected sessions
  set-name   Set the display name of one session
  set-icon   Set the icon path of one session
  set-group  Move one session into a grouping
  volume     Set the master volume of one session, in percent
  mute       Mute one session
  unmute     Unmute one session
  watch      Print session notifications until interrupted
  shell      Start the interactive shell
  version    Print the version

Use "sessionctl <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "list", "ls":
		os.Exit(runList(args))
	case "show":
		os.Exit(runShow(args))
	case "set-name":
		os.Exit(runSetName(args))
	case "set-icon":
		os.Exit(runSetIcon(args))
	case "set-group":
		os.Exit(runSetGroup(args))
	case "volume", "vol":
		os.Exit(runVolume(args))
	case "mute":
		os.Exit(runMute(args, true))
	case "unmute":
		os.Exit(runMute(args, false))
	case "watch":
		os.Exit(runWatch(args))
	case "shell":
		os.Exit(runShell(args))
	case "version", "-version", "--version":
		fmt.Println(version.UserAgent())
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set carrying the global flags, with usage text
// for one command.
func newFlagSet(name, synopsis, args string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `sessionctl %s - %s

Usage:
  sessionctl %s [flags] %s

Flags:
`, name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs, registerGlobal(fs)
}

// execute parses args, sets up the application and runs fn. It returns the
// process exit code.
func execute(fs *flag.FlagSet, g *globalFlags, args []string, nargs int, fn func(ctx context.Context, a *app) error) int {
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != nargs {
		fmt.Fprintf(os.Stderr, "Error: expected %d argument(s), got %d\n", nargs, fs.NArg())
		fs.Usage()
		return 1
	}

	cfg, err := g.resolve(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(context.Background())

	if err := fn(ctx, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runList(args []string) int {
	fs, g := newFlagSet("list", "List sessions", "")
	format := fs.String("format", "text", "Output format (text, yaml, json)")
	return execute(fs, g, args, 0, func(_ context.Context, a *app) error {
		return commands.RunList(a.env, *format)
	})
}

func runShow(args []string) int {
	fs, g := newFlagSet("show", "Show every property of the selected sessions", "")
	format := fs.String("format", "yaml", "Output format (yaml, json)")
	return execute(fs, g, args, 0, func(_ context.Context, a *app) error {
		return commands.RunShow(a.env, *format)
	})
}

func runSetName(args []string) int {
	fs, g := newFlagSet("set-name", "Set the display name of one session", "<name>")
	return execute(fs, g, args, 1, func(_ context.Context, a *app) error {
		return commands.RunSetName(a.env, fs.Arg(0))
	})
}

func runSetIcon(args []string) int {
	fs, g := newFlagSet("set-icon", "Set the icon path of one session", "<path>")
	return execute(fs, g, args, 1, func(_ context.Context, a *app) error {
		return commands.RunSetIcon(a.env, fs.Arg(0))
	})
}

func runSetGroup(args []string) int {
	fs, g := newFlagSet("set-group", "Move one session into a grouping", "")
	group := fs.String("group", "", "Grouping GUID (default: a new one)")
	return execute(fs, g, args, 0, func(_ context.Context, a *app) error {
		var id uuid.UUID
		if *group != "" {
			parsed, err := uuid.Parse(*group)
			if err != nil {
				return fmt.Errorf("invalid grouping GUID: %w", err)
			}
			id = parsed
		}
		return commands.RunSetGroup(a.env, id)
	})
}

func runVolume(args []string) int {
	fs, g := newFlagSet("volume", "Set the master volume of one session", "<percent>")
	return execute(fs, g, args, 1, func(_ context.Context, a *app) error {
		percent, err := strconv.ParseFloat(fs.Arg(0), 64)
		if err != nil {
			return fmt.Errorf("invalid volume %q", fs.Arg(0))
		}
		return commands.RunSetVolume(a.env, percent)
	})
}

func runMute(args []string, muted bool) int {
	name, synopsis := "unmute", "Unmute one session"
	if muted {
		name, synopsis = "mute", "Mute one session"
	}
	fs, g := newFlagSet(name, synopsis, "")
	return execute(fs, g, args, 0, func(_ context.Context, a *app) error {
		return commands.RunMute(a.env, muted)
	})
}

func runWatch(args []string) int {
	fs, g := newFlagSet("watch", "Print session notifications until interrupted", "")
	return execute(fs, g, args, 0, func(ctx context.Context, a *app) error {
		return commands.RunWatch(ctx, a.env)
	})
}

func runShell(args []string) int {
	fs, g := newFlagSet("shell", "Start the interactive shell", "")
	return execute(fs, g, args, 0, func(ctx context.Context, a *app) error {
		sh, err := interactive.New(a.env)
		if err != nil {
			return err
		}
		sh.Run(ctx)
		return nil
	})
}
