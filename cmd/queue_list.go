package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	queueStatuses []string
	queueLimit    int
	queueListJSON bool
)

func init() {
	queueListCmd.Flags().StringSliceVar(&queueStatuses, "status", nil, "statuses to list (default all)")
	queueListCmd.Flags().IntVarP(&queueLimit, "number", "n", queue.DefaultListLimit, "maximum number of tasks")
	queueListCmd.Flags().BoolVar(&queueListJSON, "json", false, "output as JSON array")

	QueueCmd.AddCommand(queueListCmd)
}

func resetQueueListCommandState() {
	queueStatuses = nil
	queueLimit = queue.DefaultListLimit
	queueListJSON = false
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Listing tasks...", verbose)

		statuses := make([]queue.Status, 0, len(queueStatuses))
		for _, s := range queueStatuses {
			status, err := queue.ParseStatus(s)
			if err != nil {
				defer cleanup()
				return reportError(spinner, "List tasks", err)
			}
			statuses = append(statuses, status)
		}

		items, err := workflows.QueueList(context.Background(), workflows.QueueListOptions{
			Statuses: statuses,
			Limit:    queueLimit,
			Log:      Logger,
		})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "List tasks", err)
		}
		cleanup()

		if queueListJSON {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%s  %-20s %-12s %s\n",
				ui.Code.Sprint(item.TaskID),
				ui.Status(string(item.Status)),
				item.FunctionName,
				ui.Muted.Sprint(item.TeamName))
		}
		return nil
	},
}
