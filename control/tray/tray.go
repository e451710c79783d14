// Package tray shows a status icon whose menu raises viewer commands.
package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
	"github.com/oliverbestmann/vrdesk/control"
)

// Tray shows a status icon with a menu that raises commands.
type Tray struct {
	intents *control.Intents
	quit    sync.Once
}

type trayItem struct {
	title   string
	tooltip string
	command control.Command
}

var trayItems = []trayItem{
	{"Recenter View", "Place the screen in front of you", control.CommandRecenter},
	{"Zoom In", "Move the screen closer", control.CommandZoomIn},
	{"Zoom Out", "Move the screen further away", control.CommandZoomOut},
	{"Curved/Flat", "Switch between curved and flat screen", control.CommandToggleMode},
	{"Toggle Preview", "Show or hide the preview window", control.CommandToggleWindow},
	{"Save Config", "Remember the current settings", control.CommandSave},
}

// Start runs the tray event loop on its own locked thread.
func Start(intents *control.Intents) *Tray {
	tray := &Tray{intents: intents}

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		systray.Run(tray.onReady, func() {
			slog.Debug("Tray exited")
		})
	}()

	return tray
}

func (t *Tray) onReady() {
	systray.SetIcon(trayIcon())
	systray.SetTitle("VR Desktop")
	systray.SetTooltip("VR Desktop viewer")

	for _, item := range trayItems {
		t.bind(systray.AddMenuItem(item.title, item.tooltip), item.command)
	}

	systray.AddSeparator()

	t.bind(systray.AddMenuItem("Quit", "Close the viewer"), control.CommandQuit)
}

func (t *Tray) bind(item *systray.MenuItem, cmd control.Command) {
	go func() {
		for range item.ClickedCh {
			slog.Debug("Tray menu clicked", slog.String("command", cmd.String()))
			t.intents.Raise(cmd)
		}
	}()
}

// Close removes the tray icon.
func (t *Tray) Close() {
	t.quit.Do(systray.Quit)
}

// trayIcon renders a small screen symbol as png.
func trayIcon() []byte {
	const size = 32

	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	frame := color.NRGBA{R: 0x30, G: 0x90, B: 0xe0, A: 0xff}
	screen := color.NRGBA{R: 0xe0, G: 0xf0, B: 0xff, A: 0xff}

	for y := 6; y < 24; y++ {
		for x := 2; x < 30; x++ {
			c := screen
			if y == 6 || y == 23 || x == 2 || x == 29 {
				c = frame
			}

			img.SetNRGBA(x, y, c)
		}
	}

	// stand
	for y := 24; y < 28; y++ {
		for x := 14; x < 18; x++ {
			img.SetNRGBA(x, y, frame)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}

	return buf.Bytes()
}
