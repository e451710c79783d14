// Package vrdesk wires capture, tracking and rendering into the viewer.
package vrdesk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/vrdesk/capture"
	"github.com/oliverbestmann/vrdesk/config"
	"github.com/oliverbestmann/vrdesk/control"
	"github.com/oliverbestmann/vrdesk/control/tray"
	"github.com/oliverbestmann/vrdesk/frameslot"
	"github.com/oliverbestmann/vrdesk/glimpse"
	"github.com/oliverbestmann/vrdesk/pulse"
	"github.com/oliverbestmann/vrdesk/pulse/commands"
	"github.com/oliverbestmann/vrdesk/session"
	"github.com/oliverbestmann/vrdesk/stereo"
	"github.com/oliverbestmann/vrdesk/surface"
)

const (
	SourceX11     = "x11"
	SourcePattern = "pattern"
)

// render rate while the preview window is hidden
const hiddenTickRate = 90

type Options struct {
	// Config is the effective configuration, command line overrides
	// already applied.
	Config config.Config

	// ConfigPath is where the save command writes the config to.
	ConfigPath string

	// Source selects the capture source, SourceX11 or SourcePattern.
	Source string

	// X display to connect to, empty uses $DISPLAY
	Display string

	CaptureRate int

	// MSAA enables multisampling of the preview window.
	MSAA bool

	Terminal bool
	Tray     bool

	ProfilePath string

	WindowWidth  int
	WindowHeight int

	StatsInterval time.Duration
}

func (opts *Options) withDefaults() {
	if opts.Source == "" {
		opts.Source = SourceX11
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1600
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 800
	}

	if opts.StatsInterval == 0 {
		opts.StatsInterval = 10 * time.Second
	}
}

func openSource(opts Options) (capture.Source, error) {
	switch opts.Source {
	case SourceX11:
		return capture.NewX11Source(opts.Display, opts.CaptureRate)

	case SourcePattern:
		return capture.NewPatternSource(1920, 1080, opts.CaptureRate)

	default:
		return nil, fmt.Errorf("unknown capture source %q", opts.Source)
	}
}

// Run shows the desktop until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.withDefaults()

	cfg := opts.Config

	source, err := openSource(opts)
	if err != nil {
		return fmt.Errorf("open capture source: %w", err)
	}

	defer source.Close()

	if len(source.Outputs()) == 0 {
		return capture.ErrNoOutputs
	}

	slot := frameslot.New()
	driver := capture.NewDriver(source, slot, cfg.Output)

	// the output actually captured is the one to remember
	cfg.Output = driver.Output()

	surfaceHeight := float32(surface.FallbackHeight)

	frame, err := driver.Prime()
	if err != nil {
		slog.Warn("Initial capture failed, using default screen size", slog.String("err", err.Error()))
	} else {
		surfaceHeight = surface.HeightForFrame(surface.DefaultWidth, frame.Width, frame.Height)

		slog.Info("Desktop size",
			slog.Int("width", frame.Width),
			slog.Int("height", frame.Height),
			slog.Float64("screenHeight", float64(surfaceHeight)),
		)
	}

	// create a new window that acts as preview and head simulator
	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:       opts.WindowWidth,
		Height:      opts.WindowHeight,
		Title:       "VR Desktop",
		Hidden:      !cfg.ShowWindow,
		ProfilePath: opts.ProfilePath,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	gpu, err := pulse.New(win.SurfaceDescriptor(), pulse.ContextOptionsFromEnv())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer gpu.Release()
	defer pulse.PurgeSamplers()

	view := pulse.NewView(gpu, opts.MSAA)
	defer view.Release()

	surfaceCommand := commands.NewSurfaceCommand(gpu)
	defer surfaceCommand.Release()

	desktop := &desktopTexture{ctx: gpu}
	defer desktop.Release()

	intents := &control.Intents{}

	if opts.Terminal {
		term, err := control.OpenTerminal(intents)
		if err != nil {
			slog.Info("Terminal input disabled", slog.String("reason", err.Error()))
		} else {
			defer closeLogged("terminal", term.Close)
		}
	}

	if opts.Tray {
		trayIcon := tray.Start(intents)
		defer trayIcon.Close()
	}

	sess := session.New(cfg, func(cfg config.Config) error {
		return config.Save(opts.ConfigPath, cfg)
	})

	// stop capturing before any gpu resource is released
	driver.Start()
	defer driver.Stop()

	loop := &loopState{
		ctx:        ctx,
		window:     win,
		intents:    intents,
		session:    sess,
		simulator:  newHeadSimulator(),
		composer:   stereo.NewComposer(),
		sync:       frameslot.NewTextureSync(slot, desktop),
		desktop:    desktop,
		draw:       surfaceCommand,
		compositor: newWindowCompositor(view, win),
		driver:     driver,
		slot:       slot,
		stats:      newStatsReporter(opts.StatsInterval),
		pacer:      time.NewTicker(time.Second / hiddenTickRate),

		surfaceAspect: surfaceHeight / surface.DefaultWidth,
	}

	defer loop.pacer.Stop()

	slog.Info("Viewer running",
		slog.String("output", cfg.Output),
		slog.String("mode", cfg.Mode.String()),
		slog.Bool("window", cfg.ShowWindow),
	)

	return win.Run(func(input glimpse.UpdateInputState) error {
		return loop.tick(input)
	})
}

func closeLogged(name string, close func() error) {
	if err := close(); err != nil {
		slog.Warn("Close failed", slog.String("resource", name), slog.String("err", err.Error()))
	}
}
