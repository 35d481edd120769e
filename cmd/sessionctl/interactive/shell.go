// Package interactive provides the interactive shell of sessionctl.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/wasapi-go/sessionctl/cmd/sessionctl/commands"
	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

// Shell keeps a numbered list of open sessions and runs commands against
// them. The list is refreshed by "list"; every refresh closes the previous
// controllers.
type Shell struct {
	env     *commands.Env
	out     io.Writer
	rl      *readline.Instance
	entries []commands.Entry
}

// New creates a shell reading from the terminal. Output of env is replaced
// by the readline writer.
func New(env *commands.Env) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sessions> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(env, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(env *commands.Env, out io.Writer) *Shell {
	shellEnv := *env
	shellEnv.Out = out
	return &Shell{env: &shellEnv, out: out}
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()
	defer s.closeAll()

	s.printHelp()
	s.refresh()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
		if s.Execute(line) {
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "list", "ls", "l":
		s.refresh()

	case "show", "s":
		s.withEntry(args, 0, func(e commands.Entry, _ []string) error {
			return s.show(e)
		})

	case "name":
		s.withEntry(args, 1, func(e commands.Entry, rest []string) error {
			return e.Controller.SetDisplayName(strings.Join(rest, " "))
		})

	case "icon":
		s.withEntry(args, 1, func(e commands.Entry, rest []string) error {
			return e.Controller.SetIconPath(strings.Join(rest, " "))
		})

	case "vol", "volume", "v":
		s.withEntry(args, 1, func(e commands.Entry, rest []string) error {
			percent, err := strconv.ParseFloat(strings.TrimSuffix(rest[0], "%"), 32)
			if err != nil {
				return fmt.Errorf("invalid volume %q", rest[0])
			}
			v := e.Controller.Volume()
			if v == nil {
				return commands.ErrNoVolumeControl
			}
			return v.SetVolume(float32(percent / 100))
		})

	case "mute", "unmute":
		muted := cmd == "mute"
		s.withEntry(args, 0, func(e commands.Entry, _ []string) error {
			v := e.Controller.Volume()
			if v == nil {
				return commands.ErrNoVolumeControl
			}
			return v.SetMuted(muted)
		})

	case "peak", "p":
		s.withEntry(args, 0, func(e commands.Entry, _ []string) error {
			return s.peak(e)
		})

	case "watch", "w":
		s.withEntry(args, 0, func(e commands.Entry, _ []string) error {
			return e.Controller.RegisterEventClient(s.watchHandler(e.Snapshot.Label()))
		})

	case "unwatch", "u":
		s.withEntry(args, 0, func(e commands.Entry, _ []string) error {
			return e.Controller.UnregisterEventClient(nil)
		})

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  list                 Re-enumerate sessions and print them
  show <n>             Show every property of session n
  name <n> <text>      Set the display name
  icon <n> <path>      Set the icon path
  vol <n> <percent>    Set the master volume
  mute <n> | unmute <n>
  peak <n>             Print peak meter values
  watch <n>            Print notifications of session n
  unwatch <n>          Stop printing notifications
  help                 Show this help
  quit                 Exit`)
}

func (s *Shell) refresh() {
	s.closeAll()
	entries, err := s.env.Select()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.entries = entries

	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No sessions.")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPID\tSTATE\tVOLUME")
	for i, e := range entries {
		vol := "-"
		if e.Snapshot.Volume != nil {
			vol = fmt.Sprintf("%.0f%%", *e.Snapshot.Volume*100)
			if e.Snapshot.Muted != nil && *e.Snapshot.Muted {
				vol += " (muted)"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", i+1, e.Snapshot.Name(), e.Snapshot.ProcessID, e.Snapshot.State, vol)
	}
	_ = tw.Flush()
}

func (s *Shell) closeAll() {
	s.env.CloseAll(s.entries)
	s.entries = nil
}

// withEntry resolves the session number in args[0] and runs fn with the
// remaining arguments, of which at least minRest are required.
func (s *Shell) withEntry(args []string, minRest int, fn func(commands.Entry, []string) error) {
	if len(args) < 1+minRest {
		fmt.Fprintln(s.out, "Missing arguments (type 'help' for usage)")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.entries) {
		fmt.Fprintf(s.out, "No session %q; run 'list' to see the numbers\n", args[0])
		return
	}
	if err := fn(s.entries[n-1], args[1:]); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

func (s *Shell) show(e commands.Entry) error {
	snap, err := sessioninfo.Take(e.Controller, s.env.Resolver)
	if err != nil {
		return err
	}
	return sessioninfo.Format(s.out, []sessioninfo.Snapshot{snap}, sessioninfo.FormatYAML)
}

func (s *Shell) peak(e commands.Entry) error {
	m := e.Controller.Meter()
	if m == nil {
		return fmt.Errorf("session has no peak meter")
	}
	peak, err := m.PeakValue()
	if err != nil {
		return err
	}
	channels, err := m.ChannelPeakValues()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "peak %.3f channels %v\n", peak, channels)
	return nil
}

func (s *Shell) watchHandler(label string) session.EventHandler {
	return session.EventHandlerFuncs{
		VolumeChanged: func(volume float32, muted bool) {
			fmt.Fprintf(s.out, "[%s] volume %.0f%% muted=%t\n", label, volume*100, muted)
		},
		DisplayNameChanged: func(name string) {
			fmt.Fprintf(s.out, "[%s] display name %q\n", label, name)
		},
		IconPathChanged: func(path string) {
			fmt.Fprintf(s.out, "[%s] icon path %q\n", label, path)
		},
		ChannelVolumeChanged: func(_ uint32, volumes []float32, changed uint32) {
			fmt.Fprintf(s.out, "[%s] channel %d changed %v\n", label, changed, volumes)
		},
		GroupingParamChanged: func(group uuid.UUID) {
			fmt.Fprintf(s.out, "[%s] grouping param %s\n", label, group)
		},
		StateChanged: func(state session.State) {
			fmt.Fprintf(s.out, "[%s] state %s\n", label, state)
		},
		SessionDisconnected: func(reason session.DisconnectReason) {
			fmt.Fprintf(s.out, "[%s] disconnected: %s\n", label, reason)
		},
	}
}
