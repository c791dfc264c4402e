package cmd

import (
	"github.com/spf13/cobra"
)

// QueueCmd groups commands for the status-directory task queue.
var QueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Create, move and inspect queued tasks",
	Long: `Manages tasks stored under queue/<status>/ in the configured S3 bucket.

A task moves pending -> active -> completed or failed. Pending and active
tasks can be cancelled, and failed tasks can be retried.`,
}

func resetQueueCommandState() {
	resetQueueCreateCommandState()
	resetQueueCompleteCommandState()
	resetQueueTraceCommandState()
	resetQueueListCommandState()
}
