// Package proc starts external programs in the foreground and reports how
// they ended.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/baaaaaaaka/mysh/internal/env"
)

// ErrNotFound is returned when the program cannot be located.
var ErrNotFound = errors.New("command not found")

type Options struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Status describes how a child ended.
type Status struct {
	Code int
	// Signal is set when the child was killed by a signal.
	Signal string
	// Fatal marks signals that indicate a crash (SIGSEGV, SIGABRT, ...).
	Fatal bool
}

func (s Status) Success() bool { return s.Code == 0 && s.Signal == "" }

// Child is a started program the caller must Wait for.
type Child struct {
	cmd  *exec.Cmd
	Name string
}

// Start looks up args[0] on PATH and starts it with the shell's terminal
// as stdio unless opts override it.
func Start(ctx context.Context, args []string, opts Options) (*Child, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	path, err := exec.LookPath(args[0])
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", args[0], ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Args = args
	cmd.Dir = opts.Dir
	baseEnv := opts.Env
	if baseEnv == nil {
		baseEnv = os.Environ()
	}
	cmd.Env = env.ForChild(baseEnv)
	cmd.Stdin = orReader(opts.Stdin, os.Stdin)
	cmd.Stdout = orWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orWriter(opts.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return &Child{cmd: cmd, Name: args[0]}, nil
}

func (c *Child) Pid() int { return c.cmd.Process.Pid }

// Wait blocks until the child exits. A non-zero exit is reported through
// Status, not as an error.
func (c *Child) Wait() (Status, error) {
	return Classify(c.cmd.Wait())
}

// Classify turns the result of Wait into a Status. Errors other than a
// non-zero exit are returned unchanged.
func Classify(err error) (Status, error) {
	if err == nil {
		return Status{}, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Status{}, err
	}
	st := Status{Code: exitErr.ExitCode()}
	if sig, fatal, ok := signaled(exitErr); ok {
		st.Signal = sig
		st.Fatal = fatal
	}
	return st, nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
