package config

import "github.com/baaaaaaaka/mysh/internal/alias"

const CurrentVersion = 1

const (
	DefaultPrompt             = "mysh$"
	DefaultHistorySize        = 32
	DefaultMaxLineLen         = 1024
	DefaultMaxArgs            = 256
	DefaultMaxDirs            = 16
	DefaultMaxPromptLen       = 64
	DefaultMaxAliasExpansions = 64
)

type Config struct {
	Version            int           `json:"version"`
	Prompt             string        `json:"prompt,omitempty"`
	HistoryFile        string        `json:"historyFile,omitempty"`
	HistorySize        int           `json:"historySize,omitempty"`
	MaxLineLen         int           `json:"maxLineLen,omitempty"`
	MaxArgs            int           `json:"maxArgs,omitempty"`
	MaxDirs            int           `json:"maxDirs,omitempty"`
	MaxAliasExpansions int           `json:"maxAliasExpansions,omitempty"`
	Aliases            []alias.Alias `json:"aliases,omitempty"`
}

// Limits are the capacity ceilings the shell enforces.
type Limits struct {
	HistorySize        int
	MaxLineLen         int
	MaxArgs            int
	MaxDirs            int
	MaxPromptLen       int
	MaxAliasExpansions int
}
