// Package workflows provides high-level orchestration for rdc commands.
//
// Workflows coordinate the configuration, the backends (config stores and
// the object store) and the audit trail to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading config.toml and applying environment overrides
//   - Dialing the object store or building the store adapter
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Push, Pull, ListConfigs, DeleteConfig, Verify: versioned configs in a
//     git or vault store
//   - AddStore, RemoveStore, ListStores: store entries in config.toml
//   - ShowConfig, SetObjectStore: the rest of config.toml
//   - VaultGet, VaultSet, VaultDelete, VaultList, VaultStatus: encrypted
//     vault documents in the object store
//   - StateShow, StateSet, StateRemove: records in state.json
//   - QueueCreate, QueueClaim, QueueComplete, QueueCancel, QueueRetry,
//     QueueTrace, QueueList: the task queue
//   - Log: the local audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Conditions
// an adapter reports in its result (not found, conflict) are returned as
// errors here, so callers branch with errors.Is:
//
//	_, err := workflows.Push(ctx, opts)
//	if errors.Is(err, rerrors.ErrVersionConflict) {
//	    // tell the user to pull first
//	}
//
// Backend and transport failures match rerrors.ErrStorage.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It is passed to every backend call.
package workflows
