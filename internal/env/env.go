package env

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	HistFileVar = "MYSH_HISTFILE"
	LogFileVar  = "MYSH_LOG"
	LevelVar    = "MYSH_LEVEL"

	historyFileName = ".mysh_history"
)

// Lookup reads variables from an environ-style list.
type Lookup map[string]string

func FromEnviron(environ []string) Lookup {
	return toMap(environ)
}

func Current() Lookup {
	return toMap(os.Environ())
}

func (l Lookup) Get(key string) string { return l[key] }

// Environ converts back to the KEY=value form.
func (l Lookup) Environ() []string { return fromMap(l) }

func (l Lookup) Home() string {
	if h := l["HOME"]; h != "" {
		return h
	}
	return l["USERPROFILE"]
}

// HistoryPath is $MYSH_HISTFILE, else ~/.mysh_history. It is empty when
// neither can be determined.
func (l Lookup) HistoryPath() string {
	if p := strings.TrimSpace(l[HistFileVar]); p != "" {
		return ExpandTilde(p, l.Home())
	}
	home := l.Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// ExpandTilde replaces a leading "~" or "~/" with home. Other forms such as
// "~user" are returned as is.
func ExpandTilde(word, home string) string {
	if home == "" || !strings.HasPrefix(word, "~") {
		return word
	}
	if word == "~" {
		return home
	}
	if word[1] == '/' || word[1] == filepath.Separator {
		return filepath.Join(home, word[2:])
	}
	return word
}

// ForChild returns the environment handed to programs started from the
// shell, with the nesting level bumped.
func ForChild(base []string) []string {
	m := toMap(base)
	level, err := strconv.Atoi(m[LevelVar])
	if err != nil || level < 0 {
		level = 0
	}
	m[LevelVar] = strconv.Itoa(level + 1)
	return fromMap(m)
}

func toMap(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

func fromMap(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}
