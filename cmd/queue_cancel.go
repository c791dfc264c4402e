package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/workflows"
)

func init() {
	QueueCmd.AddCommand(queueCancelCmd)
}

var queueCancelCmd = transitionCommand("cancel", "Cancel a pending or active task", "Cancel task", "Cancelling task...",
	func(ctx context.Context, taskID string) (*queue.Item, error) {
		return workflows.QueueCancel(ctx, workflows.QueueTaskOptions{TaskID: taskID, Log: Logger})
	})
