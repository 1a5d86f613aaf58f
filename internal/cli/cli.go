package cli

import (
	"github.com/spf13/cobra"
)

var (
	version = "v0.4.1"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath  string
	historyFile string
	logFile     string
	prompt      string
	command     string
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "mysh",
		Short:         "Interactive shell with line editing, history and aliases",
		Args:          cobra.NoArgs,
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	cmd.PersistentFlags().StringVar(&opts.historyFile, "history-file", "", "Override history file (default: $MYSH_HISTFILE or ~/.mysh_history)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file (default: $MYSH_LOG)")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Prompt text (default from config)")
	cmd.Flags().StringVarP(&opts.command, "command", "c", "", "Run one command line and exit")

	cmd.AddCommand(
		newHistoryCmd(opts),
		newAliasCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
