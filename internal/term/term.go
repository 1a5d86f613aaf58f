// Package term owns the controlling terminal while a line is edited: it
// switches raw mode on and off and turns raw input bytes into key events.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

var ErrNotTerminal = errors.New("not a terminal")

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Driver reads key events from a terminal. Raw mode turns off canonical
// input, echo and signal characters; output processing is left alone so
// "\n" still moves to a new line.
type Driver struct {
	fd    int
	r     *bufio.Reader
	saved *rawState
}

func Open(in *os.File) (*Driver, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	return &Driver{fd: fd, r: bufio.NewReader(in)}, nil
}

// EnterRaw saves the current mode and switches to raw input. It is a no-op
// when raw mode is already active.
func (d *Driver) EnterRaw() error {
	if d.IsRaw() {
		return nil
	}
	saved, err := makeRaw(d.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	d.saved = saved
	return nil
}

// Restore puts back the mode saved by EnterRaw.
func (d *Driver) Restore() error {
	if !d.IsRaw() {
		return nil
	}
	if err := restore(d.fd, d.saved); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	d.saved = nil
	return nil
}

func (d *Driver) IsRaw() bool { return d.saved != nil }

// ReadEvent blocks until the next input unit is decoded.
func (d *Driver) ReadEvent() (Event, error) {
	return Decode(d.r)
}

// Size returns the terminal width and height.
func (d *Driver) Size() (int, int, error) {
	return xterm.GetSize(d.fd)
}
