package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	taskmcp "github.com/petshow73/taskdesk/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the taskdesk MCP server on stdio",
	Long: `Start the taskdesk MCP server on stdio transport.

The server exposes the task store as MCP tools that AI coding assistants
can call: create_task, get_task, find_task_by_code, list_tasks,
update_task, change_task_status, remove_task, search_tasks,
count_by_status, peek_sequence, get_metrics.

The store is in-memory: the working set of tasks lives for the duration
of the server session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		srv := taskmcp.NewServer(Store, MetricsCalc, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
