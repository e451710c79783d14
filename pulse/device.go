package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

func init() {
	// glfw and the surface must be driven from the main thread
	runtime.LockOSThread()

	if level, ok := parseLogLevel(os.Getenv("WGPU_LOG_LEVEL")); ok {
		wgpu.SetLogLevel(level)
	}
}

var logLevels = map[string]wgpu.LogLevel{
	"OFF":   wgpu.LogLevelOff,
	"ERROR": wgpu.LogLevelError,
	"WARN":  wgpu.LogLevelWarn,
	"INFO":  wgpu.LogLevelInfo,
	"DEBUG": wgpu.LogLevelDebug,
	"TRACE": wgpu.LogLevelTrace,
}

func parseLogLevel(value string) (wgpu.LogLevel, bool) {
	level, ok := logLevels[strings.ToUpper(strings.TrimSpace(value))]
	return level, ok
}

// ContextOptions selects the adapter a Context is created on.
type ContextOptions struct {
	// use the software adapter, mostly useful for headless testing
	ForceFallbackAdapter bool

	// prefer the integrated gpu over a discrete one
	LowPower bool
}

// ContextOptionsFromEnv reads the adapter selection from the environment.
func ContextOptionsFromEnv() ContextOptions {
	return ContextOptions{
		ForceFallbackAdapter: os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1",
		LowPower:             os.Getenv("WGPU_LOW_POWER") == "1",
	}
}

func (opts ContextOptions) powerPreference() wgpu.PowerPreference {
	if opts.LowPower {
		return wgpu.PowerPreferenceLowPower
	}

	// both eyes are rendered at the headset rate
	return wgpu.PowerPreferenceHighPerformance
}

// Context holds the device, queue, window surface and adapter. The
// viewer renders both eyes and the preview through a single Context.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

func New(sd *wgpu.SurfaceDescriptor, opts ContextOptions) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	st.Surface = instance.CreateSurface(sd)

	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		PowerPreference:      opts.powerPreference(),
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	slog.Info("Graphics adapter acquired",
		slog.Bool("fallback", opts.ForceFallbackAdapter),
		slog.Bool("lowPower", opts.LowPower),
	)

	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

// Release frees everything in reverse order of creation. It is safe to
// call on a partially initialized Context.
func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
