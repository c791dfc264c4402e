package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rediacc/rdc/internal/audit"
	rerrors "github.com/rediacc/rdc/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation (comma-separated, e.g.
	// "push,queue.claim"). A trailing ".*" matches a whole family.
	Operations string

	// Store filters entries by store name.
	Store string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the local audit log.
//
// Returns ErrInvalidDateFormat if a date filter is malformed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	var filters []func(audit.Entry) bool

	if opts.Store != "" {
		filters = append(filters, func(e audit.Entry) bool { return e.Store == opts.Store })
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		filters = append(filters, func(e audit.Entry) bool { return matchOperation(e.Operation, ops) })
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", rerrors.ErrInvalidDateFormat)
		}
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", rerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(until)
		})
	}

	filtered := make([]audit.Entry, 0, len(entries))
	for _, e := range entries {
		keep := true
		for _, f := range filters {
			if !f(e) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, e)
		}
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func matchOperation(op string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if family, ok := strings.CutSuffix(pattern, ".*"); ok {
			if strings.HasPrefix(strings.ToLower(op), family+".") {
				return true
			}
			continue
		}
		if strings.EqualFold(op, pattern) {
			return true
		}
	}
	return false
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse(audit.TimestampFormat, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	switch {
	case e.Store != "" && e.Version > 0:
		return fmt.Sprintf("%s/%s v%d", e.Store, e.Name, e.Version)
	case e.Store != "":
		return e.Store + "/" + e.Name
	case e.Path != "":
		return e.Path
	case e.Section != "":
		return e.Section + "/" + e.Name
	case e.TaskID != "":
		return fmt.Sprintf("%s -> %s", e.TaskID, e.Status)
	}
	return ""
}
