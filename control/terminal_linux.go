package control

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

// pollTimeout bounds how long Close waits for the reader to notice.
const pollTimeout = 100

// Terminal reads single key presses from a terminal in raw mode and raises
// the matching commands.
type Terminal struct {
	fd       int
	restore  unix.Termios
	intents  *Intents
	stop     atomic.Bool
	done     chan struct{}
	restored atomic.Bool
}

// OpenTerminal switches stdin into non-canonical mode without echo. It fails
// if stdin is not a terminal.
func OpenTerminal(intents *Intents) (*Terminal, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	return openTerminal(int(fd), intents)
}

func openTerminal(fd int, intents *Intents) (*Terminal, error) {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := *termios
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	term := &Terminal{
		fd:      fd,
		restore: *termios,
		intents: intents,
		done:    make(chan struct{}),
	}

	go term.loop()

	return term, nil
}

func (t *Terminal) loop() {
	defer close(t.done)

	buf := make([]byte, 16)
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}

	for !t.stop.Load() {
		n, err := unix.Poll(fds, pollTimeout)
		if errors.Is(err, unix.EINTR) || n == 0 {
			continue
		}

		if err != nil {
			slog.Warn("Poll terminal failed", slog.String("err", err.Error()))
			return
		}

		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			return
		}

		count, err := unix.Read(t.fd, buf)
		if err != nil || count == 0 {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}

			return
		}

		for _, ch := range buf[:count] {
			if cmd, ok := RuneCommand(rune(ch)); ok {
				t.intents.Raise(cmd)
			}
		}
	}
}

// Close stops reading and restores the previous terminal attributes.
func (t *Terminal) Close() error {
	t.stop.Store(true)
	<-t.done

	if !t.restored.CompareAndSwap(false, true) {
		return nil
	}

	if err := unix.IoctlSetTermios(t.fd, unix.TCSETS, &t.restore); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}

	return nil
}
