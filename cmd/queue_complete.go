package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/workflows"
)

var (
	queueExitCode int
	queueOutput   string
	queueErrorMsg string
)

func init() {
	queueCompleteCmd.Flags().IntVar(&queueExitCode, "exit-code", 0, "exit code of the task (non-zero marks it failed)")
	queueCompleteCmd.Flags().StringVar(&queueOutput, "output", "", "console output to record")
	queueCompleteCmd.Flags().StringVar(&queueErrorMsg, "error", "", "error message to record")

	QueueCmd.AddCommand(queueCompleteCmd)
}

func resetQueueCompleteCommandState() {
	queueExitCode = 0
	queueOutput = ""
	queueErrorMsg = ""
}

var queueCompleteCmd = transitionCommand("complete", "Finish an active task", "Complete task", "Completing task...",
	func(ctx context.Context, taskID string) (*queue.Item, error) {
		return workflows.QueueComplete(ctx, workflows.QueueCompleteOptions{
			QueueTaskOptions: workflows.QueueTaskOptions{TaskID: taskID, Log: Logger},
			Result: queue.Result{
				ExitCode:      queueExitCode,
				ConsoleOutput: queueOutput,
				ErrorMessage:  queueErrorMsg,
			},
		})
	})
