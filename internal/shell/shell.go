// Package shell runs the read, expand and dispatch loop of mysh.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/mysh/internal/alias"
	"github.com/baaaaaaaka/mysh/internal/config"
	"github.com/baaaaaaaka/mysh/internal/editor"
	"github.com/baaaaaaaka/mysh/internal/env"
	"github.com/baaaaaaaka/mysh/internal/expand"
	"github.com/baaaaaaaka/mysh/internal/history"
	"github.com/baaaaaaaka/mysh/internal/lock"
	"github.com/baaaaaaaka/mysh/internal/proc"
)

var (
	ErrExit        = errors.New("exit")
	ErrTooManyArgs = errors.New("too many argument")
)

// Terminal is the raw-mode terminal the interactive loop edits on.
type Terminal interface {
	editor.Terminal
	EnterRaw() error
	Restore() error
}

type Builtin func(ctx context.Context, args []string, s *Shell) error

type state int

const (
	stateReadInput state = iota
	statePreprocess
	stateDispatch
	stateAwaitChild
	stateExit
)

var stateNames = map[state]string{
	stateReadInput:  "read-input",
	statePreprocess: "preprocess",
	stateDispatch:   "dispatch",
	stateAwaitChild: "await-child",
	stateExit:       "exit",
}

func (s state) String() string { return stateNames[s] }

type Options struct {
	// Terminal enables interactive mode. When nil, commands are read from
	// Input without editing, history or bang expansion.
	Terminal Terminal
	Input    io.Reader
	Out      io.Writer
	Err      io.Writer
	// ChildStdin is handed to external programs; nil means os.Stdin.
	ChildStdin io.Reader

	Prompt      string
	Limits      config.Limits
	Aliases     *alias.Table
	HistoryFile *history.File
	Env         env.Lookup
	Version     string
	Logger      *zap.Logger

	// Lock runs the password lock screen; nil means lock.Run.
	Lock func(context.Context) error
}

type Shell struct {
	term   Terminal
	input  *lineReader
	out    io.Writer
	errw   io.Writer
	stdin  io.Reader
	limits config.Limits

	prompt   string
	history  *history.Store
	histFile *history.File
	aliases  *alias.Table
	dirs     *DirStack
	env      env.Lookup
	version  string
	lock     func(context.Context) error
	builtins map[string]Builtin
	editor   *editor.Editor
	log      *zap.Logger

	defaultPrompt string

	line  string
	args  []string
	child *proc.Child
}

func New(opts Options) *Shell {
	limits := opts.Limits
	if limits == (config.Limits{}) {
		limits = config.Config{}.Limits()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = alias.NewTable()
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}
	lockFn := opts.Lock
	if lockFn == nil {
		lockFn = lock.Run
	}
	lookup := opts.Env
	if lookup == nil {
		lookup = env.Current()
	}

	s := &Shell{
		term:     opts.Terminal,
		out:      orWriter(opts.Out, os.Stdout),
		errw:     orWriter(opts.Err, os.Stderr),
		stdin:    opts.ChildStdin,
		limits:   limits,
		prompt:   prompt,
		history:  history.New(limits.HistorySize),
		histFile: opts.HistoryFile,
		aliases:  aliases,
		dirs:     NewDirStack(limits.MaxDirs),
		env:      lookup,
		version:  opts.Version,
		lock:     lockFn,
		builtins: make(map[string]Builtin),
		log:      log,
	}
	s.defaultPrompt = prompt
	if s.term != nil {
		s.editor = editor.New(editor.Options{
			Terminal:   s.term,
			Out:        s.out,
			History:    s.history,
			MaxLineLen: limits.MaxLineLen,
			Logger:     log,
		})
	} else {
		in := opts.Input
		if in == nil {
			in = os.Stdin
		}
		s.input = newLineReader(in, limits.MaxLineLen)
	}
	s.registerBuiltins()
	return s
}

func (s *Shell) Interactive() bool { return s.term != nil }

func (s *Shell) History() *history.Store { return s.history }

func (s *Shell) Prompt() string { return s.prompt }

// Run loops until exit or end of input. The error is non-nil only when the
// terminal mode cannot be switched; line-level failures are reported on
// the error stream and the loop goes on.
func (s *Shell) Run(ctx context.Context) (err error) {
	if s.Interactive() {
		s.loadHistory()
		defer func() {
			if rerr := s.term.Restore(); rerr != nil && err == nil {
				err = rerr
			}
			s.saveHistory()
		}()
	}

	st := stateReadInput
	for st != stateExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := s.step(ctx, st)
		if err != nil {
			return err
		}
		s.log.Debug("transition", zap.Stringer("from", st), zap.Stringer("to", next))
		st = next
	}
	return nil
}

func (s *Shell) step(ctx context.Context, st state) (state, error) {
	switch st {
	case stateReadInput:
		return s.readInput(ctx)
	case statePreprocess:
		return s.preprocess(), nil
	case stateDispatch:
		return s.dispatch(ctx)
	case stateAwaitChild:
		return s.awaitChild(), nil
	}
	return stateExit, fmt.Errorf("unknown state %d", st)
}

func (s *Shell) readInput(ctx context.Context) (state, error) {
	s.line, s.args, s.child = "", nil, nil

	if !s.Interactive() {
		line, ok, err := readCtx(ctx, s.input.Next)
		if err != nil {
			return stateExit, fmt.Errorf("read input: %w", err)
		}
		if !ok {
			return stateExit, nil
		}
		s.line = line
		return statePreprocess, nil
	}

	if err := s.term.EnterRaw(); err != nil {
		return stateExit, err
	}
	line, _, err := readCtx(ctx, func() (string, bool, error) {
		line, err := s.editor.ReadLine(s.prompt)
		return line, true, err
	})
	switch {
	case errors.Is(err, editor.ErrInterrupted):
		return stateReadInput, nil
	case errors.Is(err, io.EOF):
		return stateExit, nil
	case err != nil:
		return stateExit, err
	}
	s.line = line
	return statePreprocess, nil
}

type readResult struct {
	line string
	ok   bool
	err  error
}

// readCtx returns early with ctx.Err() when ctx ends while read is blocked.
// The abandoned read keeps its goroutine until input arrives; its result is
// dropped.
func readCtx(ctx context.Context, read func() (string, bool, error)) (string, bool, error) {
	done := make(chan readResult, 1)
	go func() {
		line, ok, err := read()
		done <- readResult{line: line, ok: ok, err: err}
	}()
	select {
	case r := <-done:
		return r.line, r.ok, r.err
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (s *Shell) preprocess() state {
	line := s.line
	if s.Interactive() {
		expanded, n, err := expand.Bang(line, s.history, s.limits.MaxLineLen)
		if err != nil {
			s.reportf("mysh: %v\n", err)
			return stateReadInput
		}
		if expanded == "" {
			return stateReadInput
		}
		if n > 0 {
			fmt.Fprintln(s.out, expanded)
		}
		s.history.Append(expanded)
		s.log.Debug("accepted line", zap.String("line", expanded), zap.Int("bang", n))
		line = expanded
	}

	line, n, err := expand.Alias(line, s.aliases, expand.AliasOptions{
		MaxLineLen: s.limits.MaxLineLen,
		MaxPasses:  s.limits.MaxAliasExpansions,
	})
	if err != nil {
		s.reportf("mysh: %v\n", err)
		return stateReadInput
	}
	if n > 0 {
		s.log.Debug("alias expanded", zap.String("line", line), zap.Int("count", n))
	}

	words, err := Tokenize(line, s.limits.MaxArgs)
	if err != nil {
		s.reportf("mysh: %v\n", err)
		return stateReadInput
	}
	if len(words) == 0 {
		return stateReadInput
	}

	cwd, _ := os.Getwd()
	args, err := Expander{Dir: cwd, Home: s.env.Home(), MaxArgs: s.limits.MaxArgs}.Expand(words)
	if err != nil {
		s.reportf("mysh: %v\n", err)
		return stateReadInput
	}
	s.line, s.args = line, args
	return stateDispatch
}

func (s *Shell) dispatch(ctx context.Context) (state, error) {
	if s.Interactive() {
		if err := s.term.Restore(); err != nil {
			return stateExit, err
		}
	}

	name := s.args[0]
	if fn, ok := s.builtins[name]; ok {
		s.log.Debug("dispatch builtin", zap.String("name", name))
		err := fn(ctx, s.args[1:], s)
		switch {
		case errors.Is(err, ErrExit):
			return stateExit, nil
		case err != nil:
			s.reportf("%s: %v\n", name, err)
		}
		return stateReadInput, nil
	}

	s.log.Debug("dispatch external", zap.Strings("args", s.args))
	child, err := proc.Start(ctx, s.args, proc.Options{
		Env:    s.env.Environ(),
		Stdin:  s.stdin,
		Stdout: s.out,
		Stderr: s.errw,
	})
	if err != nil {
		s.reportf("mysh: %s\n", describeStartError(err))
		return stateReadInput, nil
	}
	s.log.Debug("child started", zap.String("name", child.Name), zap.Int("pid", child.Pid()))
	s.child = child
	return stateAwaitChild, nil
}

func (s *Shell) awaitChild() state {
	st, err := s.child.Wait()
	if err != nil {
		s.reportf("mysh: %s: %v\n", s.child.Name, err)
		return stateReadInput
	}
	s.log.Debug("child exited",
		zap.String("name", s.child.Name),
		zap.Int("code", st.Code),
		zap.String("signal", st.Signal))
	if st.Fatal {
		s.reportf("mysh: %s: %s\n", s.child.Name, st.Signal)
	}
	return stateReadInput
}

func (s *Shell) loadHistory() {
	if s.histFile == nil {
		return
	}
	n, err := s.histFile.Load(s.history)
	if err != nil {
		s.log.Debug("history load failed", zap.String("path", s.histFile.Path()), zap.Error(err))
		return
	}
	s.log.Debug("history loaded", zap.Int("entries", n))
}

func (s *Shell) saveHistory() {
	if s.histFile == nil {
		return
	}
	if err := s.histFile.Save(s.history); err != nil {
		s.log.Debug("history save failed", zap.String("path", s.histFile.Path()), zap.Error(err))
	}
}

func (s *Shell) reportf(format string, args ...any) {
	fmt.Fprintf(s.errw, format, args...)
}

func describeStartError(err error) string {
	if errors.Is(err, proc.ErrNotFound) {
		return err.Error()
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %v", pe.Path, pe.Err)
	}
	return err.Error()
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
