// Package glimpse opens the preview window and collects its input.
package glimpse

import (
	"errors"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// ErrStop can be returned by the render function to leave Run without error.
var ErrStop = errors.New("stop running")

type Window interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Visible reports whether the window is currently shown.
	Visible() bool
	SetVisible(visible bool)

	// Run calls render until the window is closed or render fails.
	Run(render func(input UpdateInputState) error) error
	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// start with a hidden window
	Hidden bool

	// write a cpu profile into this directory, if set
	ProfilePath string
}
