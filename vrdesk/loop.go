package vrdesk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/vrdesk/capture"
	"github.com/oliverbestmann/vrdesk/control"
	"github.com/oliverbestmann/vrdesk/frameslot"
	"github.com/oliverbestmann/vrdesk/glimpse"
	"github.com/oliverbestmann/vrdesk/pulse"
	"github.com/oliverbestmann/vrdesk/pulse/commands"
	"github.com/oliverbestmann/vrdesk/session"
	"github.com/oliverbestmann/vrdesk/stereo"
	"github.com/oliverbestmann/vrdesk/surface"
	"github.com/oliverbestmann/vrdesk/tracking"
)

type loopState struct {
	ctx        context.Context
	window     glimpse.Window
	intents    *control.Intents
	session    *session.Session
	simulator  *headSimulator
	composer   stereo.Composer
	sync       *frameslot.TextureSync
	desktop    *desktopTexture
	draw       *commands.SurfaceCommand
	compositor *windowCompositor
	driver     *capture.Driver
	slot       *frameslot.Slot
	stats      *statsReporter
	pacer      *time.Ticker

	// height / width of the captured desktop
	surfaceAspect float32

	// parameters of the geometry currently uploaded
	geometry    surface.Params
	hasGeometry bool
}

func (l *loopState) tick(updateInput glimpse.UpdateInputState) error {
	now := time.Now()
	l.stats.startFrame(now)

	if err := l.ctx.Err(); err != nil {
		slog.Info("Shutting down", slog.String("reason", context.Cause(l.ctx).Error()))
		return glimpse.ErrStop
	}

	input := updateInput()

	// commands from all input sources
	raiseKeyCommands(l.intents, input.Keys)
	l.intents.Drain(l.apply)

	if l.session.Done() {
		return glimpse.ErrStop
	}

	l.window.SetVisible(l.session.ShowWindow())

	l.simulator.update(input, l.compositor.EyeAspect())

	l.session.Tracker.Poll(l.simulator)
	l.session.Anchors.EnsureAnchored()

	var phases phaseTimes

	start := time.Now()

	uploaded, err := l.sync.Tick()
	if err != nil {
		slog.Warn("Upload desktop texture failed", slog.String("err", err.Error()))
	}

	phases.Upload = time.Since(start)

	if err := l.updateGeometry(); err != nil {
		return err
	}

	if err := l.render(&phases); err != nil {
		return err
	}

	l.stats.observe(phases, uploaded)

	if l.stats.due(now) {
		l.stats.report(now, l.driver.Stats(), l.slot.Stats(), l.sync.Consumed())
	}

	return nil
}

func (l *loopState) apply(cmd control.Command) {
	// a failing save is logged by the session and not fatal
	_ = l.session.Apply(cmd)
}

func (l *loopState) updateGeometry() error {
	params := surface.DefaultParams(l.session.Anchors.Mode(), l.surfaceAspect)

	if l.hasGeometry && params == l.geometry {
		return nil
	}

	geometry := surface.Build(params)

	if err := l.draw.SetGeometry(geometry); err != nil {
		return fmt.Errorf("upload geometry: %w", err)
	}

	slog.Debug("Screen geometry updated",
		slog.String("mode", params.Mode.String()),
		slog.Int("vertices", len(geometry.Vertices)),
		slog.Float64("radius", float64(geometry.Radius)),
	)

	l.geometry = params
	l.hasGeometry = true

	return nil
}

func (l *loopState) render(phases *phaseTimes) error {
	start := time.Now()

	ok, err := l.compositor.BeginFrame()
	if err != nil {
		return err
	}

	if !ok {
		// nothing to present to, keep the tick rate bounded
		<-l.pacer.C
		return nil
	}

	head, hasHead := l.session.Tracker.Head()
	anchor, hasAnchor := l.session.Anchors.Active()
	texture := l.desktop.Texture()

	visible := eyesVisible(hasHead, hasAnchor, texture)

	var views [2]stereo.EyeView
	if visible {
		views = l.composer.Compose(l.simulator, head, anchor)
	}

	for idx, eye := range tracking.Eyes {
		target := l.compositor.EyeTarget(eye)

		if visible {
			err := l.draw.Draw(target, commands.DrawSurfaceOptions{
				Desktop:        texture,
				ViewProjection: views[idx].ViewProjection,
				Slot:           idx,
			})

			if err != nil {
				return fmt.Errorf("draw %s eye: %w", eye, err)
			}
		}

		if err := l.compositor.Submit(eye, target); err != nil {
			return fmt.Errorf("submit %s eye: %w", eye, err)
		}
	}

	phases.Draw = time.Since(start)

	start = time.Now()

	if err := l.compositor.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	phases.Submit = time.Since(start)

	return nil
}

// eyesVisible reports whether the desktop is drawn this frame. Without a
// pose, an anchor or a desktop image the eyes stay black.
func eyesVisible(hasHead, hasAnchor bool, texture *pulse.Texture) bool {
	return hasHead && hasAnchor && texture != nil
}
