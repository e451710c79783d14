package vrdesk

import (
	"github.com/oliverbestmann/vrdesk/control"
	"github.com/oliverbestmann/vrdesk/glimpse"
)

var windowKeys = map[glimpse.Key]control.Command{
	glimpse.KeyKP5:        control.CommandRecenter,
	glimpse.Key5:          control.CommandRecenter,
	glimpse.KeyKPAdd:      control.CommandZoomIn,
	glimpse.KeyEqual:      control.CommandZoomIn,
	glimpse.KeyKPSubtract: control.CommandZoomOut,
	glimpse.KeyMinus:      control.CommandZoomOut,
	glimpse.KeyC:          control.CommandToggleMode,
	glimpse.KeyW:          control.CommandToggleWindow,
	glimpse.KeyS:          control.CommandSave,
	glimpse.KeyQ:          control.CommandQuit,
	glimpse.KeyEscape:     control.CommandQuit,
}

// KeyCommand maps a key pressed in the preview window to a command.
func KeyCommand(key glimpse.Key) (control.Command, bool) {
	cmd, ok := windowKeys[key]
	return cmd, ok
}

// raiseKeyCommands raises the commands of all keys just pressed.
func raiseKeyCommands(intents *control.Intents, keys glimpse.KeysState) {
	for key, pressed := range keys.JustPressed {
		if !pressed {
			continue
		}

		if cmd, ok := KeyCommand(key); ok {
			intents.Raise(cmd)
		}
	}
}
