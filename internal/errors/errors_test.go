package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStorageErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("loading state: %w", NewStorageError("getRaw", "state.json", io.ErrUnexpectedEOF))

	if !errors.Is(err, ErrStorage) {
		t.Fatal("expected errors.Is(err, ErrStorage) to be true")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("expected StorageError to unwrap to its cause")
	}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("expected errors.As to find *StorageError")
	}
	if se.Op != "getRaw" || se.Key != "state.json" {
		t.Errorf("unexpected op/key: %q %q", se.Op, se.Key)
	}
}

func TestStorageErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"with key", NewStorageError("putRaw", "a/b.json", io.EOF), "storage putRaw a/b.json: EOF"},
		{"without key", NewStorageError("listKeys", "", io.EOF), "storage listKeys: EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrVersionConflict, ErrGUIDMismatch) {
		t.Fatal("conflict sentinels must not match each other")
	}
	if errors.Is(ErrTaskNotFound, ErrStorage) {
		t.Fatal("not-found must not be reported as a storage error")
	}
}
