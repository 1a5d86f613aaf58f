package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var errInvalidArgument = errors.New("invalid argument")

func (s *Shell) registerBuiltins() {
	s.builtins["exit"] = func(ctx context.Context, args []string, s *Shell) error {
		return ErrExit
	}

	s.builtins["cd"] = func(ctx context.Context, args []string, s *Shell) error {
		var target string
		switch len(args) {
		case 0:
			target = s.env.Home()
			if target == "" {
				return errors.New("invalid HOME directory")
			}
		case 1:
			target = args[0]
		default:
			return errors.New("too many arguments")
		}
		return chdir(target)
	}

	s.builtins["pushd"] = func(ctx context.Context, args []string, s *Shell) error {
		if len(args) > 1 {
			return errInvalidArgument
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := s.dirs.Push(cwd); err != nil {
			return err
		}
		if len(args) == 1 {
			if err := chdir(args[0]); err != nil {
				_, _ = s.dirs.Pop()
				return err
			}
		}
		return nil
	}

	s.builtins["dirs"] = func(ctx context.Context, args []string, s *Shell) error {
		for _, dir := range s.dirs.List() {
			fmt.Fprintln(s.out, dir)
		}
		return nil
	}

	s.builtins["popd"] = func(ctx context.Context, args []string, s *Shell) error {
		dir, err := s.dirs.Pop()
		if err != nil {
			return err
		}
		return chdir(dir)
	}

	s.builtins["history"] = func(ctx context.Context, args []string, s *Shell) error {
		for _, e := range s.history.Entries() {
			fmt.Fprintf(s.out, "%5d %s\n", e.Seq, e.Text)
		}
		return nil
	}

	s.builtins["prompt"] = func(ctx context.Context, args []string, s *Shell) error {
		switch len(args) {
		case 0:
			s.prompt = s.defaultPrompt
			return nil
		case 1:
		default:
			return errInvalidArgument
		}
		if len(args[0]) >= s.limits.MaxPromptLen {
			return errors.New("string is too long")
		}
		s.prompt = args[0]
		return nil
	}

	s.builtins["alias"] = func(ctx context.Context, args []string, s *Shell) error {
		switch len(args) {
		case 0:
			for _, a := range s.aliases.List() {
				fmt.Fprintf(s.out, "%s %s\n", a.Name, a.Command)
			}
			return nil
		case 1:
			return errInvalidArgument
		}
		return s.aliases.Add(args[0], strings.Join(args[1:], " "))
	}

	s.builtins["unalias"] = func(ctx context.Context, args []string, s *Shell) error {
		if len(args) != 1 {
			return errInvalidArgument
		}
		return s.aliases.Remove(args[0])
	}

	s.builtins["lock"] = func(ctx context.Context, args []string, s *Shell) error {
		return s.lock(ctx)
	}

	s.builtins["ver"] = func(ctx context.Context, args []string, s *Shell) error {
		fmt.Fprintln(s.out, "mysh "+s.version)
		return nil
	}
}

// chdir reports failures as "dir: reason" without the syscall name.
func chdir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return fmt.Errorf("%s: %w", dir, pe.Err)
		}
		return err
	}
	return nil
}
