package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var queueTraceJSON bool

func init() {
	queueTraceCmd.Flags().BoolVar(&queueTraceJSON, "json", false, "output as JSON")

	QueueCmd.AddCommand(queueTraceCmd)
}

func resetQueueTraceCommandState() {
	queueTraceJSON = false
}

var queueTraceCmd = &cobra.Command{
	Use:   "trace <task-id>",
	Short: "Show a task wherever it currently is",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Tracing task...", verbose)

		item, err := workflows.QueueTrace(context.Background(), workflows.QueueTaskOptions{TaskID: args[0], Log: Logger})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "Trace task", err)
		}
		cleanup()

		if queueTraceJSON {
			return printJSON(item)
		}
		printItem(item)
		return nil
	},
}
