package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/workflows"
)

func init() {
	QueueCmd.AddCommand(queueRetryCmd)
}

var queueRetryCmd = transitionCommand("retry", "Requeue a failed task", "Retry task", "Retrying task...",
	func(ctx context.Context, taskID string) (*queue.Item, error) {
		return workflows.QueueRetry(ctx, workflows.QueueTaskOptions{TaskID: taskID, Log: Logger})
	})
