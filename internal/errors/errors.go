package errors

import (
	"errors"
	"fmt"
)

// Not-found errors indicate the requested document or item does not exist.
var (
	// ErrConfigNotFound indicates no config document exists under the given name.
	ErrConfigNotFound = errors.New("config not found")

	// ErrVaultNotFound indicates no vault blob exists at the given path.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrTaskNotFound indicates a queue item is not present in the required status.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStoreNotFound indicates the named store entry is missing from the configuration.
	ErrStoreNotFound = errors.New("store not configured")

	// ErrStateEntryNotFound indicates a state section has no record with the given name.
	ErrStateEntryNotFound = errors.New("state entry not found")
)

// Conflict errors indicate a push would overwrite data it must not replace.
var (
	// ErrVersionConflict indicates the remote document is newer than the one being pushed.
	ErrVersionConflict = errors.New("remote config is newer, pull first")

	// ErrGUIDMismatch indicates the remote document belongs to a different config lineage.
	ErrGUIDMismatch = errors.New("config GUID mismatch")
)

// Document errors indicate stored data could not be interpreted.
var (
	// ErrConfigCorrupt indicates a stored config document could not be parsed.
	ErrConfigCorrupt = errors.New("config document is corrupt")

	// ErrInvalidConfig indicates a config document is missing its identity or version.
	ErrInvalidConfig = errors.New("config document is invalid")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrDecryptFailed indicates an envelope could not be authenticated or decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt data")

	// ErrEncryptFailed indicates a payload could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt data")

	// ErrPasswordRequired indicates encrypted data was found but no master password was supplied.
	ErrPasswordRequired = errors.New("data is encrypted and no master password was provided")

	// ErrInvalidEnvelope indicates an envelope is malformed or uses an unsupported scheme.
	ErrInvalidEnvelope = errors.New("invalid encryption envelope")
)

// Configuration errors indicate invalid local settings.
var (
	// ErrInvalidStoreType indicates a store entry names an unknown backend kind.
	ErrInvalidStoreType = errors.New("invalid store type")

	// ErrInvalidStoreEntry indicates a store entry is missing required fields.
	ErrInvalidStoreEntry = errors.New("invalid store entry")

	// ErrObjectStoreNotConfigured indicates no S3 bucket is configured.
	ErrObjectStoreNotConfigured = errors.New("object store is not configured")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidInput indicates a document supplied by the user could not be parsed.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrStorage matches every *StorageError via errors.Is.
var ErrStorage = errors.New("storage error")

// StorageError wraps a backend or transport failure with the operation that produced it.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorage as a match so callers can detect backend failures generically.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err with the operation name and key.
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}
