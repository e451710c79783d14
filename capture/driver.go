package capture

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/oliverbestmann/vrdesk/frameslot"
)

// DriverStats is a snapshot of the driver counters.
type DriverStats struct {
	Captures uint64
	Failures uint64
}

// Driver runs a capture loop on its own goroutine and publishes every
// successful capture into a frameslot.Slot.
type Driver struct {
	source Source
	slot   *frameslot.Slot

	output        string
	includeCursor bool

	stop    atomic.Bool
	running atomic.Bool
	done    chan struct{}

	captures atomic.Uint64
	failures atomic.Uint64

	// only touched by the capture goroutine
	failureStreak int
}

func NewDriver(source Source, slot *frameslot.Slot, output string) *Driver {
	outputs := source.Outputs()

	idx, found := selectOutput(outputs, output)
	if !found && len(outputs) > 0 {
		if output != "" {
			slog.Warn("Requested output not found, using first output",
				slog.String("requested", output),
				slog.Any("available", outputs),
			)
		}

		output = outputs[idx]
	}

	return &Driver{
		source:        source,
		slot:          slot,
		output:        output,
		includeCursor: true,
		done:          make(chan struct{}),
	}
}

// Prime captures a single frame synchronously. It must be called before
// Start, its result is used to size the virtual screen.
func (d *Driver) Prime() (frameslot.Frame, error) {
	if d.running.Load() {
		return frameslot.Frame{}, fmt.Errorf("prime while capture loop is running")
	}

	if err := d.captureOnce(); err != nil {
		return frameslot.Frame{}, fmt.Errorf("initial capture: %w", err)
	}

	frame := d.slot.Snapshot()
	frame.Pixels = nil

	return frame, nil
}

// Start launches the capture loop. It must be called at most once.
func (d *Driver) Start() {
	if !d.running.CompareAndSwap(false, true) {
		panic("capture driver already started")
	}

	slog.Info("Start capture loop",
		slog.String("output", d.output),
		slog.Bool("cursor", d.includeCursor),
	)

	go d.loop()
}

// Stop signals the capture loop to exit and waits until it did. A capture
// that is in flight is finished first.
func (d *Driver) Stop() {
	if !d.running.Load() {
		return
	}

	d.stop.Store(true)
	<-d.done

	slog.Info("Capture loop stopped",
		slog.Uint64("captures", d.captures.Load()),
		slog.Uint64("failures", d.failures.Load()),
	)
}

// Output returns the name of the output being captured.
func (d *Driver) Output() string {
	return d.output
}

func (d *Driver) Stats() DriverStats {
	return DriverStats{
		Captures: d.captures.Load(),
		Failures: d.failures.Load(),
	}
}

func (d *Driver) loop() {
	defer close(d.done)

	for !d.stop.Load() {
		err := d.captureOnce()
		if err != nil {
			d.failureStreak++

			if d.failureStreak == 1 {
				slog.Warn("Capture failed, retrying", slog.String("err", err.Error()))
			}

			continue
		}

		if d.failureStreak > 0 {
			slog.Info("Capture recovered", slog.Int("failedAttempts", d.failureStreak))
			d.failureStreak = 0
		}
	}
}

func (d *Driver) captureOnce() error {
	image, err := d.source.Capture(d.output, d.includeCursor)
	if err != nil {
		d.failures.Add(1)
		return err
	}

	if image.Width <= 0 || image.Height <= 0 || image.Stride < image.Width*4 || len(image.Pixels) < image.Stride*image.Height {
		d.failures.Add(1)
		return fmt.Errorf("source returned inconsistent image %dx%d stride=%d len=%d",
			image.Width, image.Height, image.Stride, len(image.Pixels))
	}

	d.slot.Write(image.Pixels, image.Width, image.Height, image.Stride)
	d.captures.Add(1)

	return nil
}
