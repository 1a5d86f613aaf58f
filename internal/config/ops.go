package config

import (
	"fmt"
	"strings"

	"github.com/baaaaaaaka/mysh/internal/alias"
)

// Limits fills unset or non-positive values with the defaults.
func (c Config) Limits() Limits {
	return Limits{
		HistorySize:        positiveOr(c.HistorySize, DefaultHistorySize),
		MaxLineLen:         positiveOr(c.MaxLineLen, DefaultMaxLineLen),
		MaxArgs:            positiveOr(c.MaxArgs, DefaultMaxArgs),
		MaxDirs:            positiveOr(c.MaxDirs, DefaultMaxDirs),
		MaxPromptLen:       DefaultMaxPromptLen,
		MaxAliasExpansions: positiveOr(c.MaxAliasExpansions, DefaultMaxAliasExpansions),
	}
}

func (c Config) PromptOrDefault() string {
	if c.Prompt == "" || len(c.Prompt) >= DefaultMaxPromptLen {
		return DefaultPrompt
	}
	return c.Prompt
}

func (c Config) FindAlias(name string) (alias.Alias, bool) {
	name = strings.TrimSpace(name)
	for _, a := range c.Aliases {
		if a.Name == name {
			return a, true
		}
	}
	return alias.Alias{}, false
}

// UpsertAlias replaces an alias in place or appends a new one, keeping the
// startup order stable.
func (c *Config) UpsertAlias(a alias.Alias) {
	for i := range c.Aliases {
		if c.Aliases[i].Name == a.Name {
			c.Aliases[i] = a
			return
		}
	}
	c.Aliases = append(c.Aliases, a)
}

func (c *Config) RemoveAlias(name string) bool {
	for i := range c.Aliases {
		if c.Aliases[i].Name != name {
			continue
		}
		c.Aliases = append(c.Aliases[:i], c.Aliases[i+1:]...)
		return true
	}
	return false
}

// AliasTable builds the runtime table from the configured aliases.
func (c Config) AliasTable() (*alias.Table, error) {
	t := alias.NewTable()
	for _, a := range c.Aliases {
		if err := t.Add(a.Name, a.Command); err != nil {
			return nil, fmt.Errorf("config alias: %w", err)
		}
	}
	return t, nil
}

// Validate rejects configs the shell cannot start from. Non-positive limits
// are fine since Limits replaces them; a line or argument limit of 1 is not,
// as both reserve one slot for the terminator.
func (c Config) Validate() error {
	if c.MaxLineLen == 1 {
		return fmt.Errorf("config maxLineLen: must be at least 2")
	}
	if c.MaxArgs == 1 {
		return fmt.Errorf("config maxArgs: must be at least 2")
	}
	_, err := c.AliasTable()
	return err
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
