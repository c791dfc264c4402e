package queue

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the state of a task. It always matches the directory the task
// is stored in.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// AllStatuses lists every status in the order Trace and List scan them.
var AllStatuses = []Status{StatusPending, StatusActive, StatusCompleted, StatusFailed, StatusCancelled}

// ParseStatus accepts a status in any case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

func (s Status) dir() string {
	return "queue/" + strings.ToLower(string(s)) + "/"
}

// Item is one queued task.
type Item struct {
	TaskID       string          `json:"taskId"`
	Status       Status          `json:"status"`
	FunctionName string          `json:"functionName"`
	MachineName  string          `json:"machineName,omitempty"`
	BridgeName   string          `json:"bridgeName,omitempty"`
	TeamName     string          `json:"teamName"`
	VaultContent string          `json:"vaultContent"`
	Priority     int             `json:"priority"`
	Params       json.RawMessage `json:"params,omitempty"`
	RetryCount   int             `json:"retryCount"`

	ErrorMessage  string `json:"errorMessage,omitempty"`
	ExitCode      *int   `json:"exitCode,omitempty"`
	ConsoleOutput string `json:"consoleOutput,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateRequest holds the caller-supplied fields of a new task.
type CreateRequest struct {
	FunctionName string
	MachineName  string
	BridgeName   string
	TeamName     string
	VaultContent string
	Priority     int
	Params       json.RawMessage
}

// Result records how an active task finished.
type Result struct {
	ExitCode      int
	ConsoleOutput string
	ErrorMessage  string
}

func itemKey(status Status, taskID string) string {
	return status.dir() + taskID + ".json"
}
