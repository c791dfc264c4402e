package queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/objectstore"
)

// DefaultListLimit caps List when the caller gives no limit.
const DefaultListLimit = 100

// Queue is a task queue stored under queue/ in one object store.
type Queue struct {
	store *objectstore.Client

	now   func() time.Time
	newID func() string

	Log logger.Logger
}

// New returns a Queue over store.
func New(store *objectstore.Client) *Queue {
	return &Queue{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Create writes a new pending task and returns it.
func (q *Queue) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	now := q.now()
	item := &Item{
		TaskID:       q.newID(),
		Status:       StatusPending,
		FunctionName: req.FunctionName,
		MachineName:  req.MachineName,
		BridgeName:   req.BridgeName,
		TeamName:     req.TeamName,
		VaultContent: req.VaultContent,
		Priority:     req.Priority,
		Params:       req.Params,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := q.store.PutJSON(ctx, itemKey(StatusPending, item.TaskID), item); err != nil {
		return nil, err
	}
	q.Log.Infof("Created task %s (%s)", item.TaskID, item.FunctionName)
	return item, nil
}

// Claim moves a pending task to active and stamps StartedAt.
func (q *Queue) Claim(ctx context.Context, taskID string) (*Item, error) {
	item, err := q.require(ctx, taskID, StatusPending)
	if err != nil {
		return nil, err
	}

	now := q.now()
	item.StartedAt = &now
	if err := q.transition(ctx, item, StatusPending, StatusActive, now); err != nil {
		return nil, err
	}
	return item, nil
}

// Complete finishes an active task. Exit code 0 moves it to completed, any
// other code to failed.
func (q *Queue) Complete(ctx context.Context, taskID string, result Result) (*Item, error) {
	item, err := q.require(ctx, taskID, StatusActive)
	if err != nil {
		return nil, err
	}

	now := q.now()
	exitCode := result.ExitCode
	item.ExitCode = &exitCode
	item.ConsoleOutput = result.ConsoleOutput
	item.ErrorMessage = result.ErrorMessage
	item.CompletedAt = &now

	to := StatusCompleted
	if exitCode != 0 {
		to = StatusFailed
	}
	if err := q.transition(ctx, item, StatusActive, to, now); err != nil {
		return nil, err
	}
	return item, nil
}

// Cancel moves a pending or active task to cancelled, checking pending first.
func (q *Queue) Cancel(ctx context.Context, taskID string) (*Item, error) {
	if err := validateID(taskID); err != nil {
		return nil, err
	}

	for _, from := range []Status{StatusPending, StatusActive} {
		item, err := q.get(ctx, from, taskID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}

		now := q.now()
		item.CompletedAt = &now
		if err := q.transition(ctx, item, from, StatusCancelled, now); err != nil {
			return nil, err
		}
		return item, nil
	}

	return nil, fmt.Errorf("%w: %s not found in cancellable state", rerrors.ErrTaskNotFound, taskID)
}

// Retry returns a failed task to pending, clearing its result and
// incrementing RetryCount.
func (q *Queue) Retry(ctx context.Context, taskID string) (*Item, error) {
	item, err := q.require(ctx, taskID, StatusFailed)
	if err != nil {
		return nil, err
	}

	item.RetryCount++
	item.ExitCode = nil
	item.ErrorMessage = ""
	item.ConsoleOutput = ""
	item.StartedAt = nil
	item.CompletedAt = nil
	if err := q.transition(ctx, item, StatusFailed, StatusPending, q.now()); err != nil {
		return nil, err
	}
	return item, nil
}

// Trace looks for a task in every status directory. When an interrupted
// transition left it in more than one, the copy updated last wins. It
// returns nil when the task does not exist.
func (q *Queue) Trace(ctx context.Context, taskID string) (*Item, error) {
	if err := validateID(taskID); err != nil {
		return nil, err
	}

	var found *Item
	for _, status := range AllStatuses {
		item, err := q.get(ctx, status, taskID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		if found != nil {
			q.Log.Warnf("Task %s is present in both %s and %s", taskID, found.Status, item.Status)
			if !item.UpdatedAt.After(found.UpdatedAt) {
				continue
			}
		}
		found = item
	}
	return found, nil
}

// ListOptions selects which tasks List returns.
type ListOptions struct {
	// Statuses to scan, in order. Empty means all.
	Statuses []Status
	// Limit caps the number of tasks returned. Zero means DefaultListLimit.
	Limit int
}

// List returns up to Limit tasks from the selected status directories. It
// stops reading as soon as the limit is reached; there is no continuation.
func (q *Queue) List(ctx context.Context, opts ListOptions) ([]*Item, error) {
	statuses := opts.Statuses
	if len(statuses) == 0 {
		statuses = AllStatuses
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	items := []*Item{}
	for _, status := range statuses {
		keys, err := q.store.ListKeys(ctx, status.dir())
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			if len(items) >= limit {
				return items, nil
			}

			taskID, ok := strings.CutSuffix(strings.TrimPrefix(key, status.dir()), ".json")
			if !ok || strings.Contains(taskID, "/") {
				continue
			}

			item, err := q.get(ctx, status, taskID)
			if err != nil {
				return nil, err
			}
			// Moved away between listing and reading.
			if item == nil {
				continue
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (q *Queue) get(ctx context.Context, status Status, taskID string) (*Item, error) {
	item := &Item{}
	found, err := q.store.GetJSON(ctx, itemKey(status, taskID), item)
	if err != nil || !found {
		return nil, err
	}
	item.Status = status
	return item, nil
}

func (q *Queue) require(ctx context.Context, taskID string, status Status) (*Item, error) {
	if err := validateID(taskID); err != nil {
		return nil, err
	}

	item, err := q.get(ctx, status, taskID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s not found in %s state", rerrors.ErrTaskNotFound, taskID, strings.ToLower(string(status)))
	}
	return item, nil
}

// transition writes item under to and then removes the copy under from.
func (q *Queue) transition(ctx context.Context, item *Item, from, to Status, now time.Time) error {
	item.Status = to
	item.UpdatedAt = now

	if err := q.store.PutJSON(ctx, itemKey(to, item.TaskID), item); err != nil {
		return err
	}
	if err := q.store.DeleteObject(ctx, itemKey(from, item.TaskID)); err != nil {
		q.Log.Errorf("Task %s is now in both %s and %s: %v", item.TaskID, from, to, err)
		return fmt.Errorf("task %s written to %s but not removed from %s: %w", item.TaskID, to, from, err)
	}

	q.Log.Infof("Task %s: %s -> %s", item.TaskID, from, to)
	return nil
}

func validateID(taskID string) error {
	if err := uuid.Validate(taskID); err != nil {
		return fmt.Errorf("%w: invalid task id %q", rerrors.ErrTaskNotFound, taskID)
	}
	return nil
}
