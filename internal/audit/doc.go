// Package audit records mutating rdc operations in a local audit trail.
//
// Every config push or delete, vault write or delete, state change and
// queue transition appends one entry to
//
//	<data dir>/audit.jsonl
//
// where the data directory is $XDG_DATA_HOME/rdc (or ~/.local/share/rdc).
// Each line is a JSON object with the UTC timestamp, the local actor
// (user@host), the operation name and operation-specific fields such as
// the store, config name and version, vault path or task id.
//
// # Usage
//
//	entry := audit.NewEntry("push")
//	entry.Store = "prod"
//	entry.Name = "cluster"
//	entry.Version = 3
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the operation
// still succeeds. ReadEntries skips malformed lines so a partially written
// final line never hides the rest of the history.
package audit
