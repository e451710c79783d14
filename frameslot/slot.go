// Package frameslot hands captured desktop frames from the capture goroutine
// to the render loop.
//
// A Slot holds exactly one frame. The producer overwrites it in place, the
// consumer looks at it under the same lock. A version counter tells the
// consumer whether anything changed without comparing pixels.
package frameslot

import (
	"sync"
	"sync/atomic"
)

// Frame is a packed 32-bit BGRA image.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
	Stride int

	// Version of the frame, zero means no frame was written yet.
	Version uint64
}

// SlotStats is a snapshot of the slot counters.
type SlotStats struct {
	// Writes is the number of frames written, equal to the current version.
	Writes uint64

	// Overwritten counts frames that were replaced before any consumer
	// looked at them.
	Overwritten uint64
}

// Slot is a single frame buffer shared by exactly one writer and one reader.
type Slot struct {
	mu sync.Mutex

	// protected by mu
	pixels []byte
	width  int
	height int
	stride int
	unread bool

	// written under mu, may be loaded without it
	version     atomic.Uint64
	overwritten atomic.Uint64
}

func New() *Slot {
	return &Slot{}
}

// Write copies the pixels into the slot and publishes them as a new version.
// The buffer is only reallocated when the frame size changes.
func (s *Slot) Write(pixels []byte, width, height, stride int) {
	size := stride * height

	s.mu.Lock()
	defer s.mu.Unlock()

	if cap(s.pixels) < size {
		s.pixels = make([]byte, size)
	}

	s.pixels = s.pixels[:size]
	copy(s.pixels, pixels[:size])

	s.width = width
	s.height = height
	s.stride = stride

	if s.unread {
		s.overwritten.Add(1)
	}

	s.unread = true
	s.version.Add(1)
}

// Version returns the latest published version without taking the lock.
func (s *Slot) Version() uint64 {
	return s.version.Load()
}

// Read calls fn with the current frame while holding the slot lock. The
// pixel slice aliases the slot buffer and must not be retained after fn
// returns. Keep fn short, the producer waits for it.
func (s *Slot) Read(fn func(frame Frame)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unread = false

	fn(Frame{
		Pixels:  s.pixels,
		Width:   s.width,
		Height:  s.height,
		Stride:  s.stride,
		Version: s.version.Load(),
	})
}

// Snapshot returns a copy of the current frame that the caller owns.
func (s *Slot) Snapshot() Frame {
	var snapshot Frame

	s.Read(func(frame Frame) {
		snapshot = frame
		snapshot.Pixels = append([]byte(nil), frame.Pixels...)
	})

	return snapshot
}

func (s *Slot) Stats() SlotStats {
	return SlotStats{
		Writes:      s.version.Load(),
		Overwritten: s.overwritten.Load(),
	}
}
