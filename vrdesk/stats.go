package vrdesk

import (
	"log/slog"
	"math"
	"time"

	"github.com/oliverbestmann/vrdesk/capture"
	"github.com/oliverbestmann/vrdesk/frameslot"
)

// FrameTimes tracks a moving average of the render loop frame durations.
type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records the start of a new frame.
func (t *FrameTimes) Tick(now time.Time) {
	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1
}

// phases of a single tick, measured for the periodic stats log
type phaseTimes struct {
	Upload time.Duration
	Draw   time.Duration
	Submit time.Duration
}

type statsReporter struct {
	interval time.Duration
	last     time.Time

	frames   FrameTimes
	phases   phaseTimes
	uploads  uint64
	observed int
}

func newStatsReporter(interval time.Duration) *statsReporter {
	return &statsReporter{interval: interval}
}

func (s *statsReporter) startFrame(now time.Time) {
	s.frames.Tick(now)

	if s.last.IsZero() {
		s.last = now
	}
}

func (s *statsReporter) observe(phases phaseTimes, uploaded bool) {
	s.phases.Upload += phases.Upload
	s.phases.Draw += phases.Draw
	s.phases.Submit += phases.Submit
	s.observed++

	if uploaded {
		s.uploads++
	}
}

// due reports whether the next report should be logged.
func (s *statsReporter) due(now time.Time) bool {
	return !s.last.IsZero() && now.Sub(s.last) >= s.interval
}

func (s *statsReporter) report(now time.Time, driver capture.DriverStats, slot frameslot.SlotStats, staged uint64) {
	if s.observed == 0 {
		return
	}

	n := time.Duration(s.observed)

	slog.Info("Render stats",
		slog.Float64("fps", math.Round(s.frames.FPS()*10)/10),
		slog.Duration("maxFrame", s.frames.MaxDuration),
		slog.Duration("upload", s.phases.Upload/n),
		slog.Duration("draw", s.phases.Draw/n),
		slog.Duration("submit", s.phases.Submit/n),
		slog.Uint64("textureUploads", s.uploads),
		slog.Uint64("captures", driver.Captures),
		slog.Uint64("captureFailures", driver.Failures),
		slog.Uint64("framesSkipped", slot.Overwritten),
		slog.Uint64("frameVersion", staged),
	)

	s.last = now
	s.phases = phaseTimes{}
	s.uploads = 0
	s.observed = 0
	s.frames.MaxDuration = 0
}
