//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import "golang.org/x/sys/unix"

type rawState = unix.Termios

func makeRaw(fd int) (*rawState, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	cur := *saved
	cur.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	cur.Cc[unix.VMIN] = 1
	cur.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &cur); err != nil {
		return nil, err
	}
	return saved, nil
}

func restore(fd int, saved *rawState) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
}
