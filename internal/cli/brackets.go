package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petshow73/taskdesk/internal/brackets"
)

var bracketsCmd = &cobra.Command{
	Use:   "brackets <expression>",
	Short: "Check an expression for balanced brackets",
	Long: `Check that every (, [ and { in the expression is closed by its
matching counterpart in the right order. Non-bracket characters are ignored.

Exits non-zero and reports the first violation when the expression is
unbalanced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := brackets.Check(args[0]); err != nil {
			return fmt.Errorf("checking brackets: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "balanced")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bracketsCmd)
}
