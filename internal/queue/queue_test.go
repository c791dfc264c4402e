package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	rerrors "github.com/rediacc/rdc/internal/errors"
	"github.com/rediacc/rdc/internal/objectstore"
	"github.com/rediacc/rdc/internal/objectstore/objectstoretest"
)

// newTestQueue returns a Queue with a deterministic clock that advances one
// second per call and sequential task IDs.
func newTestQueue(t *testing.T) (*Queue, *objectstoretest.Fake) {
	t.Helper()
	fake := objectstoretest.New()
	q := New(objectstore.New(fake, "rdc-test", "org"))

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	next := 0
	q.newID = func() string {
		next++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", next)
	}
	return q, fake
}

func mustCreate(t *testing.T, q *Queue) *Item {
	t.Helper()
	item, err := q.Create(context.Background(), CreateRequest{
		FunctionName: "backup",
		MachineName:  "web-1",
		TeamName:     "ops",
		VaultContent: "{}",
		Priority:     3,
		Params:       json.RawMessage(`{"repo":"app"}`),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return item
}

func requireLocation(t *testing.T, fake *objectstoretest.Fake, taskID string, want Status) {
	t.Helper()
	for _, status := range AllStatuses {
		_, ok := fake.Object("org/" + itemKey(status, taskID))
		if ok != (status == want) {
			t.Errorf("task %s present in %s = %v, want only in %s (keys %v)", taskID, status, ok, want, fake.Keys())
		}
	}
}

func TestCreate(t *testing.T) {
	q, fake := newTestQueue(t)
	item := mustCreate(t, q)

	if item.Status != StatusPending || item.RetryCount != 0 {
		t.Errorf("Create() = %+v", item)
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v", item.CreatedAt, item.UpdatedAt)
	}
	requireLocation(t, fake, item.TaskID, StatusPending)

	raw, _ := fake.Object("org/queue/pending/" + item.TaskID + ".json")
	for _, field := range []string{`"taskId"`, `"functionName"`, `"teamName"`, `"vaultContent"`, `"retryCount"`, `"createdAt"`} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("stored task missing %s: %s", field, raw)
		}
	}
	if strings.Contains(string(raw), `"exitCode"`) {
		t.Errorf("new task carries an exit code: %s", raw)
	}
}

func TestLifecycleCompleted(t *testing.T) {
	ctx := context.Background()
	q, fake := newTestQueue(t)
	item := mustCreate(t, q)

	claimed, err := q.Claim(ctx, item.TaskID)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if claimed.Status != StatusActive || claimed.StartedAt == nil {
		t.Errorf("Claim() = %+v", claimed)
	}
	requireLocation(t, fake, item.TaskID, StatusActive)

	done, err := q.Complete(ctx, item.TaskID, Result{ExitCode: 0, ConsoleOutput: "ok"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if done.Status != StatusCompleted || done.CompletedAt == nil || *done.ExitCode != 0 {
		t.Errorf("Complete() = %+v", done)
	}
	requireLocation(t, fake, item.TaskID, StatusCompleted)

	traced, err := q.Trace(ctx, item.TaskID)
	if err != nil || traced == nil {
		t.Fatalf("Trace() = %v, %v", traced, err)
	}
	if traced.Status != StatusCompleted || traced.ConsoleOutput != "ok" || traced.FunctionName != "backup" {
		t.Errorf("Trace() = %+v", traced)
	}
}

func TestLifecycleFailedAndRetry(t *testing.T) {
	ctx := context.Background()
	q, fake := newTestQueue(t)
	item := mustCreate(t, q)

	if _, err := q.Claim(ctx, item.TaskID); err != nil {
		t.Fatal(err)
	}
	failed, err := q.Complete(ctx, item.TaskID, Result{ExitCode: 1, ErrorMessage: "disk full", ConsoleOutput: "..."})
	if err != nil {
		t.Fatal(err)
	}
	if failed.Status != StatusFailed || *failed.ExitCode != 1 {
		t.Errorf("Complete(exit 1) = %+v", failed)
	}
	requireLocation(t, fake, item.TaskID, StatusFailed)

	retried, err := q.Retry(ctx, item.TaskID)
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if retried.Status != StatusPending || retried.RetryCount != 1 {
		t.Errorf("Retry() = %+v", retried)
	}
	if retried.ExitCode != nil || retried.ErrorMessage != "" || retried.ConsoleOutput != "" || retried.CompletedAt != nil {
		t.Errorf("Retry() did not clear results: %+v", retried)
	}
	requireLocation(t, fake, item.TaskID, StatusPending)

	traced, _ := q.Trace(ctx, item.TaskID)
	if traced.RetryCount != 1 || traced.ExitCode != nil {
		t.Errorf("Trace() after retry = %+v", traced)
	}
}

func TestTransitionsRequireSourceState(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)
	item := mustCreate(t, q)

	tests := []struct {
		name string
		op   func() (*Item, error)
		want string
	}{
		{"complete pending", func() (*Item, error) { return q.Complete(ctx, item.TaskID, Result{}) }, "not found in active state"},
		{"retry pending", func() (*Item, error) { return q.Retry(ctx, item.TaskID) }, "not found in failed state"},
		{"claim missing", func() (*Item, error) { return q.Claim(ctx, "00000000-0000-4000-8000-999999999999") }, "not found in pending state"},
		{"claim bad id", func() (*Item, error) { return q.Claim(ctx, "../state") }, "invalid task id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op()
			if !errors.Is(err, rerrors.ErrTaskNotFound) {
				t.Fatalf("error = %v, want ErrTaskNotFound", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
			if got != nil {
				t.Errorf("item = %+v, want nil", got)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	q, fake := newTestQueue(t)

	pending := mustCreate(t, q)
	active := mustCreate(t, q)
	if _, err := q.Claim(ctx, active.TaskID); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{pending.TaskID, active.TaskID} {
		item, err := q.Cancel(ctx, id)
		if err != nil {
			t.Fatalf("Cancel(%s) error = %v", id, err)
		}
		if item.Status != StatusCancelled {
			t.Errorf("Cancel(%s) status = %s", id, item.Status)
		}
		requireLocation(t, fake, id, StatusCancelled)
	}

	_, err := q.Cancel(ctx, pending.TaskID)
	if !errors.Is(err, rerrors.ErrTaskNotFound) || !strings.Contains(err.Error(), "cancellable") {
		t.Errorf("Cancel() of cancelled task error = %v", err)
	}
}

func TestTracePrefersLatestCopy(t *testing.T) {
	ctx := context.Background()
	q, fake := newTestQueue(t)
	item := mustCreate(t, q)

	// Simulate a crash after the active copy was written but before the
	// pending copy was deleted.
	fake.Fail = func(op, key string) error {
		if op == "DeleteObject" {
			return errors.New("connection reset")
		}
		return nil
	}
	if _, err := q.Claim(ctx, item.TaskID); !errors.Is(err, rerrors.ErrStorage) {
		t.Fatalf("Claim() error = %v, want a storage error", err)
	}
	fake.Fail = nil

	for _, status := range []Status{StatusPending, StatusActive} {
		if _, ok := fake.Object("org/" + itemKey(status, item.TaskID)); !ok {
			t.Fatalf("expected a copy in %s", status)
		}
	}

	traced, err := q.Trace(ctx, item.TaskID)
	if err != nil {
		t.Fatal(err)
	}
	if traced.Status != StatusActive {
		t.Errorf("Trace() status = %s, want the newer active copy", traced.Status)
	}
}

func TestTraceMissing(t *testing.T) {
	q, _ := newTestQueue(t)
	item, err := q.Trace(context.Background(), "00000000-0000-4000-8000-000000000042")
	if err != nil || item != nil {
		t.Errorf("Trace() = %v, %v, want nil, nil", item, err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	q, fake := newTestQueue(t)
	fake.PageSize = 2

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, mustCreate(t, q).TaskID)
	}
	if _, err := q.Claim(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	fake.SetObject("org/queue/pending/notes.txt", []byte("x"))

	all, err := q.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("List() returned %d tasks, want 5", len(all))
	}

	active, err := q.List(ctx, ListOptions{Statuses: []Status{StatusActive}})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].TaskID != ids[0] {
		t.Errorf("List(active) = %+v", active)
	}

	before := fake.Calls["GetObject"]
	limited, err := q.List(ctx, ListOptions{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(limit 2) returned %d tasks", len(limited))
	}
	if reads := fake.Calls["GetObject"] - before; reads != 2 {
		t.Errorf("List(limit 2) read %d objects, want 2", reads)
	}

	empty, err := q.List(ctx, ListOptions{Statuses: []Status{StatusCancelled}})
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("List(cancelled) = %v, %v, want empty", empty, err)
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{"pending": StatusPending, " Failed ": StatusFailed, "CANCELLED": StatusCancelled} {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("ParseStatus(done) succeeded")
	}
}
