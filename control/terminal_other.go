//go:build !linux

package control

import "errors"

type Terminal struct{}

func OpenTerminal(intents *Intents) (*Terminal, error) {
	return nil, errors.New("terminal input is only supported on linux")
}

func (t *Terminal) Close() error {
	return nil
}
