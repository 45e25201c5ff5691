package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskdesk",
	Short: "taskdesk - in-memory task manager with per-project task codes",
	Long: `Taskdesk is a small task manager that keeps its working set in memory
for the duration of a session. Tasks get a sequential numeric id and a
human-readable per-project code (e.g. PROJ-3).

It ships two session surfaces over the store (an MCP server for AI
assistants and an interactive dashboard) plus two standalone utilities:
a bracket-matching validator and an order-pricing calculator.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskdesk %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
