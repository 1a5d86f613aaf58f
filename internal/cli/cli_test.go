package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baaaaaaaka/mysh/internal/alias"
	"github.com/baaaaaaaka/mysh/internal/config"
	"github.com/baaaaaaaka/mysh/internal/term"
)

func TestBuildVersion(t *testing.T) {
	prevVersion, prevCommit, prevDate := version, commit, date
	t.Cleanup(func() { version, commit, date = prevVersion, prevCommit, prevDate })

	version, commit, date = "v1.0.0", "abc123", "2026-01-02"
	if got := buildVersion(); got != "v1.0.0 (abc123) 2026-01-02" {
		t.Fatalf("buildVersion=%q", got)
	}
	commit, date = "", ""
	if got := buildVersion(); got != "v1.0.0" {
		t.Fatalf("buildVersion=%q", got)
	}
}

func TestRootVersionFlag(t *testing.T) {
	out, _, err := runRoot(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("version output=%q", out)
	}
}

func TestRunShellCommandFlag(t *testing.T) {
	store := newTempStore(t)
	if err := store.Save(config.Config{
		Version: config.CurrentVersion,
		Aliases: []alias.Alias{{Name: "v", Command: "ver"}},
	}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	out, errOut, err := runRoot(t, "--config", store.Path(), "-c", "v extra")
	if err != nil {
		t.Fatalf("run: %v (stderr %q)", err, errOut)
	}
	if out != "mysh "+buildVersion()+"\n" {
		t.Fatalf("stdout=%q", out)
	}

	out, _, err = runRoot(t, "--config", store.Path(), "-c", "alias")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "v ver\n" {
		t.Fatalf("config aliases not seeded: %q", out)
	}
}

func TestRunShellReportsLineErrors(t *testing.T) {
	store := newTempStore(t)
	_, errOut, err := runRoot(t, "--config", store.Path(), "-c", "unalias missing")
	if err != nil {
		t.Fatalf("line errors must not fail the process: %v", err)
	}
	if errOut != "unalias: missing: unregistered alias\n" {
		t.Fatalf("stderr=%q", errOut)
	}
}

func TestRunShellRejectsLongPrompt(t *testing.T) {
	store := newTempStore(t)
	_, _, err := runRoot(t, "--config", store.Path(), "--prompt", strings.Repeat("x", 80), "-c", "ver")
	if err == nil || !strings.Contains(err.Error(), "prompt is too long") {
		t.Fatalf("expected prompt error, got %v", err)
	}
}

func TestRunShellRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"aliases":[{"name":"a","command":"x"},{"name":"a","command":"y"}]}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runRoot(t, "--config", path, "-c", "ver")
	if !errors.Is(err, alias.ErrExists) {
		t.Fatalf("expected duplicate alias error, got %v", err)
	}
}

func TestRunShellTerminalOpenFailure(t *testing.T) {
	prevIs, prevOpen := isTerminal, openTerminal
	t.Cleanup(func() { isTerminal, openTerminal = prevIs, prevOpen })
	isTerminal = func(*os.File) bool { return true }
	openTerminal = func(*os.File) (*term.Driver, error) { return nil, term.ErrNotTerminal }

	store := newTempStore(t)
	_, _, err := runRoot(t, "--config", store.Path())
	if !errors.Is(err, term.ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}

func TestHistoryCmd(t *testing.T) {
	store := newTempStore(t)
	path := filepath.Join(t.TempDir(), "hist")
	if err := os.WriteFile(path, []byte("ls\n\nmake\n"), 0o600); err != nil {
		t.Fatalf("write history: %v", err)
	}
	out, _, err := runRoot(t, "--config", store.Path(), "--history-file", path, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if out != "    1 ls\n    2 make\n" {
		t.Fatalf("history output=%q", out)
	}
}

func TestHistoryPathPrecedence(t *testing.T) {
	lookup := map[string]string{"HOME": "/home/u"}

	if got := historyPath(&rootOptions{historyFile: "/flag"}, config.Config{HistoryFile: "/cfg"}, lookup); got != "/flag" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := historyPath(&rootOptions{}, config.Config{HistoryFile: "~/h"}, lookup); got != filepath.Join("/home/u", "h") {
		t.Fatalf("config path=%q", got)
	}
	if got := historyPath(&rootOptions{}, config.Config{}, lookup); got != filepath.Join("/home/u", ".mysh_history") {
		t.Fatalf("default path=%q", got)
	}
}

func TestAliasCmds(t *testing.T) {
	store := newTempStore(t)
	cfgArgs := []string{"--config", store.Path()}

	if _, _, err := runRoot(t, append(cfgArgs, "alias", "add", "ll", "ls", "-l")...); err != nil {
		t.Fatalf("alias add: %v", err)
	}
	if _, _, err := runRoot(t, append(cfgArgs, "alias", "add", "gs", "git", "status")...); err != nil {
		t.Fatalf("alias add: %v", err)
	}
	if _, _, err := runRoot(t, append(cfgArgs, "alias", "add", "ll", "ls")...); !errors.Is(err, alias.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, _, err := runRoot(t, append(cfgArgs, "alias", "add", "--replace", "ll", "ls", "-la")...); err != nil {
		t.Fatalf("alias add --replace: %v", err)
	}

	out, _, err := runRoot(t, append(cfgArgs, "alias", "list")...)
	if err != nil {
		t.Fatalf("alias list: %v", err)
	}
	if out != "ll ls -la\ngs git status\n" {
		t.Fatalf("alias list=%q", out)
	}

	if _, _, err := runRoot(t, append(cfgArgs, "alias", "remove", "ll")...); err != nil {
		t.Fatalf("alias remove: %v", err)
	}
	if _, _, err := runRoot(t, append(cfgArgs, "alias", "remove", "ll")...); !errors.Is(err, alias.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := runRoot(t, append(cfgArgs, "alias", "add", "two words", "x")...); err == nil {
		t.Fatalf("expected single-word alias name error")
	}
}
