package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/petshow73/taskdesk/internal/observability"
)

var (
	eventsType  string
	eventsSince string
	eventsLimit int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show task lifecycle events from the audit log",
	Long: `Show the task lifecycle events recorded in the append-only event log
(.taskdesk_events.jsonl): creates, updates, status changes, completions,
and removals.

Filter by event kind with --type, limit the time window with --since,
and cap the output with --limit (most recent events win).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized (eventlog.enabled may be false)")
		}

		filter := observability.EventFilter{Type: eventsType}
		if eventsSince != "" {
			d, err := time.ParseDuration(eventsSince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			since := time.Now().UTC().Add(-d)
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events recorded.")
			return nil
		}

		if eventsLimit > 0 && len(events) > eventsLimit {
			events = events[len(events)-eventsLimit:]
		}

		for _, e := range events {
			line := fmt.Sprintf("%s  %-20s %s", e.Time.Format(time.RFC3339), e.Type, e.Message)
			if code, ok := e.Data["code"].(string); ok {
				line += "  [" + code + "]"
			}
			fmt.Fprintln(out, line)
		}

		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "Only show events of this kind (e.g. task.created)")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "Only show events newer than this duration (e.g. 24h)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "Maximum number of events to show (0 for all)")
	rootCmd.AddCommand(eventsCmd)
}
