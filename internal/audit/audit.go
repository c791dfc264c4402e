package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rediacc/rdc/internal/configs"
	"github.com/rediacc/rdc/internal/utils"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	Actor     string `json:"actor"`
	Operation string `json:"op"`

	Store   string `json:"store,omitempty"`   // For store operations.
	Name    string `json:"name,omitempty"`    // Config name or state record name.
	ID      string `json:"id,omitempty"`      // Config GUID.
	Version int    `json:"version,omitempty"` // Config version pushed.
	Path    string `json:"path,omitempty"`    // Vault path.
	Section string `json:"section,omitempty"` // State section.
	TaskID  string `json:"task_id,omitempty"` // Queue task.
	Status  string `json:"status,omitempty"`  // Queue status after the transition.
}

// NewEntry returns an entry for op with the actor filled in.
func NewEntry(op string) Entry {
	return Entry{Actor: utils.Actor(), Operation: op}
}

// Log appends an entry to the audit log.
// Failures are ignored: operations should not fail because auditing did.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.UserSettings.AuditLogPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	entries := []Entry{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}
