package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/mysh/internal/config"
	"github.com/baaaaaaaka/mysh/internal/env"
	"github.com/baaaaaaaka/mysh/internal/history"
	"github.com/baaaaaaaka/mysh/internal/logging"
	"github.com/baaaaaaaka/mysh/internal/proc"
	"github.com/baaaaaaaka/mysh/internal/shell"
	"github.com/baaaaaaaka/mysh/internal/term"
)

var (
	openTerminal = term.Open
	isTerminal   = term.IsTerminal
)

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	store, err := config.NewStore(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	lookup := env.Current()
	logPath := opts.logFile
	if logPath == "" {
		logPath = lookup.Get(env.LogFileVar)
	}
	logger, closeLog, err := logging.New(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	aliases, err := cfg.AliasTable()
	if err != nil {
		return err
	}
	limits := cfg.Limits()

	prompt := cfg.PromptOrDefault()
	if opts.prompt != "" {
		if len(opts.prompt) >= limits.MaxPromptLen {
			return fmt.Errorf("prompt is too long (max %d bytes)", limits.MaxPromptLen-1)
		}
		prompt = opts.prompt
	}

	shOpts := shell.Options{
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
		Prompt:  prompt,
		Limits:  limits,
		Aliases: aliases,
		Env:     lookup,
		Version: buildVersion(),
		Logger:  logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	switch {
	case cmd.Flags().Changed("command"):
		shOpts.Input = strings.NewReader(opts.command)
	case isTerminal(os.Stdin):
		drv, err := openTerminal(os.Stdin)
		if err != nil {
			return err
		}
		shOpts.Terminal = drv
		if path := historyPath(opts, cfg, lookup); path != "" {
			shOpts.HistoryFile = history.NewFile(path, limits.MaxLineLen)
		}

		shield := proc.NewShield()
		defer func() {
			shield.Stop()
			logger.Debug("interrupts shielded", zap.Int("count", shield.Received()))
		}()
	default:
		shOpts.Input = os.Stdin
	}

	logger.Debug("shell start",
		zap.Bool("interactive", shOpts.Terminal != nil),
		zap.String("config", store.Path()),
		zap.Int("aliases", aliases.Len()))

	if err := shell.New(shOpts).Run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("mysh: %w", err)
	}
	return nil
}

func historyPath(opts *rootOptions, cfg config.Config, lookup env.Lookup) string {
	if opts.historyFile != "" {
		return opts.historyFile
	}
	if cfg.HistoryFile != "" {
		return env.ExpandTilde(cfg.HistoryFile, lookup.Home())
	}
	return lookup.HistoryPath()
}

func newHistoryFile(opts *rootOptions) (*history.File, error) {
	store, err := config.NewStore(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	path := historyPath(opts, cfg, env.Current())
	if path == "" {
		return nil, fmt.Errorf("no history file: set --history-file or HOME")
	}
	return history.NewFile(path, cfg.Limits().MaxLineLen), nil
}
