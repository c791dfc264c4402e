package utils

import (
	"errors"
	"testing"
)

func TestCheckConfirmation(t *testing.T) {
	got, err := checkConfirmation([]byte("hunter2"), []byte("hunter2"))
	if err != nil || got != "hunter2" {
		t.Errorf("checkConfirmation = %q, %v", got, err)
	}

	if _, err := checkConfirmation([]byte("hunter2"), []byte("hunter3")); !errors.Is(err, ErrPassphraseMismatch) {
		t.Errorf("Expected ErrPassphraseMismatch, got %v", err)
	}
}
