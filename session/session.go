// Package session holds the user facing state of the viewer and applies
// commands to it.
package session

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/oliverbestmann/vrdesk/config"
	"github.com/oliverbestmann/vrdesk/control"
	"github.com/oliverbestmann/vrdesk/tracking"
)

// ZoomStep is the distance change of a single zoom command in meters.
const ZoomStep = 0.1

// SaveFunc persists a config.
type SaveFunc func(config.Config) error

// Session is driven by the render loop and not safe for concurrent use.
type Session struct {
	Tracker *tracking.Tracker
	Anchors *anchor.Controller

	output     string
	showWindow bool
	save       SaveFunc
	done       bool
}

// New creates a session from the effective config. The output is the name
// of the captured output, which is what gets saved.
func New(cfg config.Config, save SaveFunc) *Session {
	tracker := &tracking.Tracker{}

	return &Session{
		Tracker:    tracker,
		Anchors:    anchor.NewController(tracker, cfg.Mode, cfg.Distance),
		output:     cfg.Output,
		showWindow: cfg.ShowWindow,
		save:       save,
	}
}

// Apply executes a single command. Only a failing save returns an error,
// the session stays usable in any case.
func (s *Session) Apply(cmd control.Command) error {
	mode := s.Anchors.Mode()

	switch cmd {
	case control.CommandRecenter:
		s.Anchors.RecenterActive()
		slog.Info("Recenter",
			slog.String("mode", mode.String()),
			slog.Float64("distance", float64(s.Anchors.Distance(mode))),
		)

	case control.CommandZoomIn:
		s.Anchors.AdjustDistance(mode, -ZoomStep)
		slog.Info("Zoom in", slog.Float64("distance", float64(s.Anchors.Distance(mode))))

	case control.CommandZoomOut:
		s.Anchors.AdjustDistance(mode, ZoomStep)
		slog.Info("Zoom out", slog.Float64("distance", float64(s.Anchors.Distance(mode))))

	case control.CommandToggleMode:
		s.Anchors.ToggleMode()

	case control.CommandToggleWindow:
		s.showWindow = !s.showWindow
		slog.Info("Preview window toggled", slog.Bool("visible", s.showWindow))

	case control.CommandSave:
		cfg := s.Config()

		if err := s.save(cfg); err != nil {
			slog.Warn("Saving config failed", slog.String("err", err.Error()))
			return fmt.Errorf("save config: %w", err)
		}

		slog.Info("Config saved",
			slog.String("output", cfg.Output),
			slog.String("mode", cfg.Mode.String()),
		)

	case control.CommandQuit:
		slog.Info("Quit requested")
		s.done = true
	}

	return nil
}

// Config returns the current state as config. The distance is the one of
// the active mode.
func (s *Session) Config() config.Config {
	mode := s.Anchors.Mode()

	return config.Config{
		Output:     s.output,
		Mode:       mode,
		Distance:   s.Anchors.Distance(mode),
		ShowWindow: s.showWindow,
	}
}

func (s *Session) ShowWindow() bool {
	return s.showWindow
}

// Done reports whether a quit command was applied.
func (s *Session) Done() bool {
	return s.done
}
