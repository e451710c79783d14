// Package control turns user input from the terminal, the tray menu and the
// preview window into commands for the render loop.
package control

import "sync/atomic"

//go:generate go tool stringer -type Command -trimprefix Command

type Command int

const (
	CommandRecenter Command = iota
	CommandZoomIn
	CommandZoomOut
	CommandToggleMode
	CommandToggleWindow
	CommandSave
	CommandQuit

	commandCount
)

// Commands lists all commands in the order they are drained.
var Commands = [...]Command{
	CommandRecenter,
	CommandZoomIn,
	CommandZoomOut,
	CommandToggleMode,
	CommandToggleWindow,
	CommandSave,
	CommandQuit,
}

// Intents collects commands raised by input actors running on their own
// goroutines. Raising a command that is already pending is a no-op.
type Intents struct {
	pending [commandCount]atomic.Bool
}

func (i *Intents) Raise(cmd Command) {
	if cmd < 0 || cmd >= commandCount {
		return
	}

	i.pending[cmd].Store(true)
}

// Drain calls fn for every pending command and clears it. Must only be
// called from the render loop.
func (i *Intents) Drain(fn func(Command)) {
	for _, cmd := range Commands {
		if i.pending[cmd].Swap(false) {
			fn(cmd)
		}
	}
}

// RuneCommand maps a key typed in the terminal to a command.
func RuneCommand(r rune) (Command, bool) {
	switch r {
	case '5':
		return CommandRecenter, true
	case '+':
		return CommandZoomIn, true
	case '-':
		return CommandZoomOut, true
	case 'c', 'C':
		return CommandToggleMode, true
	case 'w', 'W':
		return CommandToggleWindow, true
	case 's', 'S':
		return CommandSave, true
	case 'q', 'Q', 0x1b:
		return CommandQuit, true
	default:
		return 0, false
	}
}
