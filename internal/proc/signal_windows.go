//go:build windows

package proc

import (
	"os"
	"os/exec"
	"os/signal"
)

func signaled(*exec.ExitError) (string, bool, bool) { return "", false, false }

func notify(ch chan<- os.Signal) { signal.Notify(ch, os.Interrupt) }
