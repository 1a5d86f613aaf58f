package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the saved history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := newHistoryFile(root)
			if err != nil {
				return err
			}
			lines, err := file.ReadAll()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, line := range lines {
				fmt.Fprintf(out, "%5d %s\n", i+1, line)
			}
			return nil
		},
	}
}
