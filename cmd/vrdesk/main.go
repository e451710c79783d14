// Command vrdesk shows the X11 desktop on a virtual screen in front of
// the viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/oliverbestmann/vrdesk/capture"
	"github.com/oliverbestmann/vrdesk/config"
	"github.com/oliverbestmann/vrdesk/vrdesk"
)

type flags struct {
	output   string
	noWindow bool
	distance float64
	curved   bool

	source      string
	display     string
	configPath  string
	profilePath string
	rate        int
	msaa        bool
	tray        bool
	verbose     bool
}

func parseFlags(args []string) (flags, map[string]bool, error) {
	var f flags

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	fs.StringVar(&f.output, "o", "", "name of the output to capture")
	fs.StringVar(&f.output, "output", "", "name of the output to capture")
	fs.BoolVar(&f.noWindow, "n", false, "start without the preview window")
	fs.BoolVar(&f.noWindow, "no-window", false, "start without the preview window")
	fs.Float64Var(&f.distance, "d", float64(anchor.DefaultDistance), "screen distance in meters")
	fs.BoolVar(&f.curved, "c", false, "start with the curved screen")

	fs.StringVar(&f.source, "source", vrdesk.SourceX11, "capture source, x11 or pattern")
	fs.StringVar(&f.display, "display", "", "X display to capture, defaults to $DISPLAY")
	fs.StringVar(&f.configPath, "config", "", "path of the config file")
	fs.StringVar(&f.profilePath, "profile", "", "write a cpu profile into this directory")
	fs.IntVar(&f.rate, "rate", capture.DefaultCaptureRate, "captures per second")
	fs.BoolVar(&f.msaa, "msaa", true, "multisample the preview window")
	fs.BoolVar(&f.tray, "tray", true, "show a tray icon")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args[1:]); err != nil {
		return flags{}, nil, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) {
		explicit[fl.Name] = true
	})

	return f, explicit, nil
}

// applyFlags overrides the values of the config file with the flags
// given on the command line.
func applyFlags(cfg config.Config, f flags, explicit map[string]bool) (config.Config, error) {
	if explicit["o"] || explicit["output"] {
		cfg.Output = f.output
	}

	if explicit["n"] || explicit["no-window"] {
		cfg.ShowWindow = !f.noWindow
	}

	if explicit["d"] {
		if math.IsNaN(f.distance) || math.IsInf(f.distance, 0) {
			return config.Config{}, fmt.Errorf("invalid distance %v", f.distance)
		}

		cfg.Distance = float32(f.distance)
	}

	if explicit["c"] {
		cfg.Mode = anchor.Flat
		if f.curved {
			cfg.Mode = anchor.Curved
		}
	}

	return cfg, nil
}

func run(ctx context.Context, args []string) error {
	f, explicit, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: f.verbose, Level: level})
	slog.SetDefault(slog.New(handler))

	configPath := f.configPath
	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cfg, err = applyFlags(cfg, f, explicit)
	if err != nil {
		return err
	}

	slog.Info("Configuration loaded",
		slog.String("path", configPath),
		slog.String("output", cfg.Output),
		slog.String("mode", cfg.Mode.String()),
		slog.Float64("distance", float64(cfg.Distance)),
		slog.Bool("window", cfg.ShowWindow),
	)

	return vrdesk.Run(ctx, vrdesk.Options{
		Config:      cfg,
		ConfigPath:  configPath,
		Source:      f.source,
		Display:     f.display,
		CaptureRate: f.rate,
		MSAA:        f.msaa,
		Terminal:    true,
		Tray:        f.tray,
		ProfilePath: f.profilePath,
	})
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		cancel()

		_, _ = fmt.Fprintln(os.Stderr, "vrdesk:", err)
		os.Exit(1)
	}
}
