//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import (
	"errors"
	"os"
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func openPty(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return ptmx, tty
}

func TestDriver_RawModeRoundTrip(t *testing.T) {
	ptmx, tty := openPty(t)
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("setsize: %v", err)
	}

	d, err := Open(tty)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fd := int(tty.Fd())
	before, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}

	if err := d.EnterRaw(); err != nil {
		t.Fatalf("EnterRaw: %v", err)
	}
	if !d.IsRaw() {
		t.Fatalf("expected raw mode")
	}
	raw, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if raw.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG) != 0 {
		t.Fatalf("raw mode left lflag bits set: %#x", raw.Lflag)
	}
	if raw.Oflag != before.Oflag {
		t.Fatalf("raw mode changed output flags")
	}
	if err := d.EnterRaw(); err != nil {
		t.Fatalf("second EnterRaw: %v", err)
	}

	if err := d.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	after, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if after.Lflag != before.Lflag {
		t.Fatalf("lflag=%#x want %#x", after.Lflag, before.Lflag)
	}
	if err := d.Restore(); err != nil {
		t.Fatalf("second Restore: %v", err)
	}

	cols, rows, err := d.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if cols != 80 || rows != 24 {
		t.Fatalf("Size=%dx%d want 80x24", cols, rows)
	}
}

func TestDriver_ReadsEventsFromTerminal(t *testing.T) {
	ptmx, tty := openPty(t)
	d, err := Open(tty)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.EnterRaw(); err != nil {
		t.Fatalf("EnterRaw: %v", err)
	}
	t.Cleanup(func() { _ = d.Restore() })

	if _, err := ptmx.Write([]byte("x\x1b[A")); err != nil {
		t.Fatalf("write pty: %v", err)
	}
	for _, want := range []Event{{Key: KeyRune, Ch: 'x'}, {Key: KeyUp}} {
		got, err := d.ReadEvent()
		if err != nil {
			t.Fatalf("ReadEvent: %v", err)
		}
		if got != want {
			t.Fatalf("ReadEvent=%+v want %+v", got, want)
		}
	}
}

func TestOpen_RejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Fatalf("regular file reported as terminal")
	}
	if _, err := Open(f); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}
