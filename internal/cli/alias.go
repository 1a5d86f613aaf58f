package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/mysh/internal/alias"
	"github.com/baaaaaaaka/mysh/internal/config"
)

func newAliasCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage aliases loaded at startup",
	}
	cmd.AddCommand(
		newAliasListCmd(root),
		newAliasAddCmd(root),
		newAliasRemoveCmd(root),
	)
	return cmd
}

func newAliasListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List startup aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return err
			}
			for _, a := range cfg.Aliases {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.Name, a.Command)
			}
			return nil
		},
	}
}

func newAliasAddCmd(root *rootOptions) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "add NAME COMMAND...",
		Short: "Add a startup alias",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if strings.ContainsAny(name, " \t") {
				return fmt.Errorf("alias name %q must be a single word", name)
			}
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			return store.Update(func(cfg *config.Config) error {
				if _, ok := cfg.FindAlias(name); ok && !replace {
					return fmt.Errorf("alias: %s: %w", name, alias.ErrExists)
				}
				cfg.UpsertAlias(alias.Alias{Name: name, Command: strings.Join(args[1:], " ")})
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing alias")
	return cmd
}

func newAliasRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a startup alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			return store.Update(func(cfg *config.Config) error {
				if !cfg.RemoveAlias(args[0]) {
					return fmt.Errorf("alias: %s: %w", args[0], alias.ErrNotFound)
				}
				return nil
			})
		},
	}
}
