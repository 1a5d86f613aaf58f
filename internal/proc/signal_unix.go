//go:build !windows

package proc

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

var fatalExitSignals = map[syscall.Signal]struct{}{
	syscall.SIGABRT: {},
	syscall.SIGBUS:  {},
	syscall.SIGFPE:  {},
	syscall.SIGILL:  {},
	syscall.SIGSEGV: {},
	syscall.SIGSYS:  {},
	syscall.SIGTRAP: {},
}

var shieldSignals = []os.Signal{os.Interrupt, syscall.SIGQUIT}

func signaled(exitErr *exec.ExitError) (string, bool, bool) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		if ptr, ok := exitErr.Sys().(*syscall.WaitStatus); ok && ptr != nil {
			status = *ptr
		} else {
			return "", false, false
		}
	}
	if !status.Signaled() {
		return "", false, false
	}
	_, fatal := fatalExitSignals[status.Signal()]
	return status.Signal().String(), fatal, true
}

func notify(ch chan<- os.Signal) { signal.Notify(ch, shieldSignals...) }
