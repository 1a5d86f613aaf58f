//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package term

import xterm "golang.org/x/term"

// No termios here: fall back to x/term's raw mode, which also disables
// output processing.
type rawState = xterm.State

func makeRaw(fd int) (*rawState, error) {
	return xterm.MakeRaw(fd)
}

func restore(fd int, saved *rawState) error {
	return xterm.Restore(fd, saved)
}
