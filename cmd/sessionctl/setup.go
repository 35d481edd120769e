package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wasapi-go/sessionctl/cmd/sessionctl/commands"
	"github.com/wasapi-go/sessionctl/internal/config"
	"github.com/wasapi-go/sessionctl/internal/telemetry"
	"github.com/wasapi-go/sessionctl/pkg/log"
	"github.com/wasapi-go/sessionctl/pkg/session"
	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
	"github.com/wasapi-go/sessionctl/pkg/version"
)

// source is a commands.Source that holds native resources.
type source interface {
	commands.Source
	Close()
}

// globalFlags are accepted by every command. Flags given on the command
// line override the configuration file.
type globalFlags struct {
	config   string
	logLevel string
	capture  string
	console  bool
	flow     string
	pid      uint
	name     string
	noSystem bool
	metrics  bool
}

func registerGlobal(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.config, "config", "", "Configuration file (YAML)")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.capture, "capture", "", "Capture session events to this .alog file")
	fs.BoolVar(&g.console, "capture-console", false, "Mirror captured events to the log")
	fs.StringVar(&g.flow, "flow", "", "Endpoint direction (render, capture)")
	fs.UintVar(&g.pid, "pid", 0, "Select sessions of this process ID")
	fs.StringVar(&g.name, "name", "", "Select sessions whose name contains this text")
	fs.BoolVar(&g.noSystem, "no-system", false, "Exclude the system sounds session")
	fs.BoolVar(&g.metrics, "metrics", false, "Print native call metrics on exit")
	return g
}

// resolve loads the configuration file, if any, and applies the flags that
// were set explicitly.
func (g *globalFlags) resolve(fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if g.config != "" {
		loaded, err := config.Load(g.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = g.logLevel
		case "capture":
			cfg.Capture.Path = g.capture
		case "capture-console":
			cfg.Capture.Console = g.console
		case "flow":
			cfg.Select.DataFlow = g.flow
		case "pid":
			cfg.Select.ProcessID = uint32(g.pid)
		case "name":
			cfg.Select.NameContains = g.name
		case "no-system":
			cfg.Select.IncludeSystemSounds = !g.noSystem
		case "metrics":
			cfg.Metrics.Enabled = g.metrics
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app is a fully set up command environment.
type app struct {
	env       *commands.Env
	src       source
	capture   *log.FileLogger
	telemetry *telemetry.Provider
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	a := &app{}
	var loggers []log.Logger
	if cfg.Capture.Path != "" {
		fl, err := log.NewFileLogger(cfg.Capture.Path)
		if err != nil {
			return nil, fmt.Errorf("open capture file: %w", err)
		}
		a.capture = fl
		loggers = append(loggers, fl)
		logger.Info("capturing session events", slog.String("path", cfg.Capture.Path))
	}
	if cfg.Capture.Console {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "sessionctl",
		ServiceVersion: version.Current,
		Enabled:        cfg.Metrics.Enabled,
	})
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.telemetry = tp

	src, err := openSource(cfg.Select.DataFlow)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.src = src

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMeterProvider(tp.MeterProvider),
	}
	switch len(loggers) {
	case 0:
	case 1:
		opts = append(opts, session.WithEventLogger(loggers[0]))
	default:
		opts = append(opts, session.WithEventLogger(log.NewMultiLogger(loggers...)))
	}

	a.env = &commands.Env{
		Source:   src,
		Options:  opts,
		Selector: cfg.Select.Selector,
		Resolver: sessioninfo.SystemProcesses{},
		Out:      os.Stdout,
		Logger:   logger,
	}
	return a, nil
}

// close releases everything newApp acquired, in reverse order.
func (a *app) close(ctx context.Context) {
	if a.src != nil {
		a.src.Close()
	}
	if a.telemetry != nil {
		if err := a.telemetry.WriteSummary(ctx, os.Stderr); err != nil {
			slog.Warn("metrics summary failed", slog.String("error", err.Error()))
		}
		if err := a.telemetry.Shutdown(ctx); err != nil {
			slog.Warn("metrics shutdown failed", slog.String("error", err.Error()))
		}
	}
	if a.capture != nil {
		if err := a.capture.Close(); err != nil {
			slog.Warn("close capture file", slog.String("error", err.Error()))
		}
	}
}
