package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baaaaaaaka/mysh/internal/env"
)

// Tokenize splits line on spaces and tabs. At most maxArgs-1 words are
// accepted.
func Tokenize(line string, maxArgs int) ([]string, error) {
	words := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
	if len(words) > maxArgs-1 {
		return nil, ErrTooManyArgs
	}
	return words, nil
}

// Expander rewrites tokenized words: glob patterns without a slash are
// matched against dir, and a leading "~" becomes home.
type Expander struct {
	Dir     string
	Home    string
	MaxArgs int
}

func (x Expander) Expand(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	add := func(w string) error {
		if len(out) >= x.MaxArgs-1 {
			return ErrTooManyArgs
		}
		out = append(out, w)
		return nil
	}

	var names []string
	for _, w := range words {
		if !isGlob(w) {
			if err := add(env.ExpandTilde(w, x.Home)); err != nil {
				return nil, err
			}
			continue
		}
		if names == nil {
			var err error
			if names, err = readNames(x.Dir); err != nil {
				return nil, err
			}
		}
		matched := 0
		for _, name := range names {
			if !matchName(w, name) {
				continue
			}
			matched++
			if err := add(name); err != nil {
				return nil, err
			}
		}
		if matched == 0 {
			if err := add(w); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func isGlob(w string) bool {
	return strings.ContainsAny(w, "*?") && !strings.Contains(w, "/")
}

// matchName follows fnmatch with FNM_PERIOD: a leading dot in name must be
// matched by a literal dot.
func matchName(pattern, name string) bool {
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(pattern, ".") {
		return false
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}

func readNames(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	names := make([]string, 0, len(entries)+2)
	names = append(names, ".", "..")
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
