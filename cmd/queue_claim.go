package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/workflows"
)

func init() {
	QueueCmd.AddCommand(queueClaimCmd)
}

var queueClaimCmd = transitionCommand("claim", "Move a pending task to active", "Claim task", "Claiming task...",
	func(ctx context.Context, taskID string) (*queue.Item, error) {
		return workflows.QueueClaim(ctx, workflows.QueueTaskOptions{TaskID: taskID, Log: Logger})
	})
