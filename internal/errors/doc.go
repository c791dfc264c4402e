// Package errors provides typed error values for rdc.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Not-found errors: a config, vault or queue item is absent (ErrConfigNotFound, ErrTaskNotFound)
//   - Conflict errors: a push would overwrite newer or unrelated data (ErrVersionConflict, ErrGUIDMismatch)
//   - Crypto errors: decryption or authentication failures (ErrDecryptFailed, ErrPasswordRequired)
//   - Backend errors: transport or permission failures wrapped in *StorageError
//   - Configuration errors: unknown store kinds, missing settings (ErrInvalidStoreType)
//
// Not-found and conflict conditions are reported, not fatal: store adapters
// return them inside their result structs so the CLI can branch on them
// without treating the environment as broken. Backend errors are returned
// as the Go error value because they indicate misconfiguration.
//
// # Usage
//
// Return errors from internal packages:
//
//	if !found {
//	    return nil, fmt.Errorf("task %s: %w", id, errors.ErrTaskNotFound)
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := adapter.Push(ctx, cfg, name)
//	if errors.Is(result.Err, rerrors.ErrVersionConflict) {
//	    // Tell the user to pull first
//	}
//
// Detect backend failures regardless of which operation produced them:
//
//	if errors.Is(err, rerrors.ErrStorage) {
//	    var se *rerrors.StorageError
//	    errors.As(err, &se)
//	}
package errors
