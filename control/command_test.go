package control

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentsDrainInOrder(t *testing.T) {
	var intents Intents

	intents.Raise(CommandQuit)
	intents.Raise(CommandZoomIn)
	intents.Raise(CommandRecenter)
	intents.Raise(CommandZoomIn)

	var drained []Command
	intents.Drain(func(cmd Command) {
		drained = append(drained, cmd)
	})

	assert.Equal(t, []Command{CommandRecenter, CommandZoomIn, CommandQuit}, drained)

	// everything was consumed
	drained = nil
	intents.Drain(func(cmd Command) {
		drained = append(drained, cmd)
	})

	assert.Empty(t, drained)
}

func TestIntentsIgnoreInvalidCommands(t *testing.T) {
	var intents Intents

	intents.Raise(Command(-1))
	intents.Raise(commandCount)

	intents.Drain(func(cmd Command) {
		t.Fatalf("unexpected command %s", cmd)
	})
}

func TestIntentsConcurrentRaise(t *testing.T) {
	var intents Intents
	var wg sync.WaitGroup

	for _, cmd := range Commands {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				intents.Raise(cmd)
			}
		}()
	}

	seen := map[Command]bool{}
	for range 100 {
		intents.Drain(func(cmd Command) { seen[cmd] = true })
	}

	wg.Wait()

	intents.Drain(func(cmd Command) { seen[cmd] = true })

	assert.Len(t, seen, len(Commands))
}

func TestRuneCommand(t *testing.T) {
	cases := map[rune]Command{
		'5':  CommandRecenter,
		'+':  CommandZoomIn,
		'-':  CommandZoomOut,
		'c':  CommandToggleMode,
		'w':  CommandToggleWindow,
		's':  CommandSave,
		'q':  CommandQuit,
		0x1b: CommandQuit,
	}

	for r, expected := range cases {
		cmd, ok := RuneCommand(r)
		assert.True(t, ok, "rune %q", r)
		assert.Equal(t, expected, cmd)
	}

	_, ok := RuneCommand('x')
	assert.False(t, ok)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "ZoomIn", CommandZoomIn.String())
	assert.Equal(t, "ToggleWindow", CommandToggleWindow.String())
	assert.Equal(t, "Command(42)", Command(42).String())
}

