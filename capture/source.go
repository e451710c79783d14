// Package capture grabs desktop images from a capture source and feeds them
// into a frameslot.Slot.
package capture

import "errors"

// ErrNoOutputs is returned when a source has nothing to capture.
var ErrNoOutputs = errors.New("no capture outputs available")

// Image is a single captured frame in packed 32-bit BGRA. Pixels may alias
// a buffer owned by the source and are only valid until the next Capture.
type Image struct {
	Pixels []byte
	Width  int
	Height int
	Stride int
}

// Source delivers full desktop images. Capture may block until the source
// has a new image; failures are transient and the caller simply retries.
type Source interface {
	// Outputs lists the names of the outputs that can be captured.
	Outputs() []string

	// Capture grabs one image of the given output. An unknown output name
	// falls back to the first output.
	Capture(output string, includeCursor bool) (Image, error)

	Close() error
}

// selectOutput picks the requested output or falls back to the first one.
func selectOutput(outputs []string, requested string) (int, bool) {
	for idx, name := range outputs {
		if name == requested {
			return idx, true
		}
	}

	return 0, false
}
