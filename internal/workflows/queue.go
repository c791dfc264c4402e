package workflows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rediacc/rdc/internal/audit"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/queue"
)

// QueueCreateOptions configures the queue create workflow.
type QueueCreateOptions struct {
	Request queue.CreateRequest
	Log     logger.Logger
}

// QueueCreate adds a pending task.
func QueueCreate(ctx context.Context, opts QueueCreateOptions) (*queue.Item, error) {
	if opts.Request.FunctionName == "" || opts.Request.TeamName == "" {
		return nil, fmt.Errorf("%w: a task needs a function and a team", rerrors.ErrInvalidInput)
	}
	if len(opts.Request.Params) > 0 && !json.Valid(opts.Request.Params) {
		return nil, fmt.Errorf("%w: task params are not valid JSON", rerrors.ErrInvalidInput)
	}

	q, err := openQueue(ctx, opts.Log)
	if err != nil {
		return nil, err
	}

	item, err := q.Create(ctx, opts.Request)
	if err != nil {
		return nil, err
	}
	logTransition("queue.create", item)
	return item, nil
}

// QueueTaskOptions identifies a task.
type QueueTaskOptions struct {
	TaskID string
	Log    logger.Logger
}

// QueueClaim moves a pending task to active.
//
// Returns ErrTaskNotFound if the task is not pending.
func QueueClaim(ctx context.Context, opts QueueTaskOptions) (*queue.Item, error) {
	return runTransition(ctx, "queue.claim", opts.Log, func(q *queue.Queue) (*queue.Item, error) {
		return q.Claim(ctx, opts.TaskID)
	})
}

// QueueCompleteOptions configures the queue complete workflow.
type QueueCompleteOptions struct {
	QueueTaskOptions
	Result queue.Result
}

// QueueComplete finishes an active task as completed (exit code 0) or
// failed.
//
// Returns ErrTaskNotFound if the task is not active.
func QueueComplete(ctx context.Context, opts QueueCompleteOptions) (*queue.Item, error) {
	return runTransition(ctx, "queue.complete", opts.Log, func(q *queue.Queue) (*queue.Item, error) {
		return q.Complete(ctx, opts.TaskID, opts.Result)
	})
}

// QueueCancel cancels a pending or active task.
//
// Returns ErrTaskNotFound if the task is in neither state.
func QueueCancel(ctx context.Context, opts QueueTaskOptions) (*queue.Item, error) {
	return runTransition(ctx, "queue.cancel", opts.Log, func(q *queue.Queue) (*queue.Item, error) {
		return q.Cancel(ctx, opts.TaskID)
	})
}

// QueueRetry returns a failed task to pending.
//
// Returns ErrTaskNotFound if the task has not failed.
func QueueRetry(ctx context.Context, opts QueueTaskOptions) (*queue.Item, error) {
	return runTransition(ctx, "queue.retry", opts.Log, func(q *queue.Queue) (*queue.Item, error) {
		return q.Retry(ctx, opts.TaskID)
	})
}

// QueueTrace finds a task in whichever status it is in.
//
// Returns ErrTaskNotFound if no status directory holds the task.
func QueueTrace(ctx context.Context, opts QueueTaskOptions) (*queue.Item, error) {
	q, err := openQueue(ctx, opts.Log)
	if err != nil {
		return nil, err
	}

	item, err := q.Trace(ctx, opts.TaskID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrTaskNotFound, opts.TaskID)
	}
	return item, nil
}

// QueueListOptions configures the queue list workflow.
type QueueListOptions struct {
	Statuses []queue.Status
	Limit    int
	Log      logger.Logger
}

// QueueList returns up to Limit tasks from the selected statuses.
func QueueList(ctx context.Context, opts QueueListOptions) ([]*queue.Item, error) {
	q, err := openQueue(ctx, opts.Log)
	if err != nil {
		return nil, err
	}
	return q.List(ctx, queue.ListOptions{Statuses: opts.Statuses, Limit: opts.Limit})
}

func runTransition(ctx context.Context, op string, log logger.Logger, fn func(*queue.Queue) (*queue.Item, error)) (*queue.Item, error) {
	q, err := openQueue(ctx, log)
	if err != nil {
		return nil, err
	}

	item, err := fn(q)
	if err != nil {
		return nil, err
	}
	logTransition(op, item)
	return item, nil
}

func logTransition(op string, item *queue.Item) {
	entry := audit.NewEntry(op)
	entry.TaskID = item.TaskID
	entry.Status = string(item.Status)
	audit.Log(entry)
}
