package utils

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrPassphraseMismatch is returned when a confirmed passphrase was typed
// differently the second time.
var ErrPassphraseMismatch = errors.New("passphrases do not match")

// ReadPassphrase prompts on stderr and reads a line from the terminal
// without echo. Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// PromptMasterPassword reads the master password. With confirm set it is
// asked for twice, which writes use so a typo cannot encrypt data under a
// password nobody knows.
func PromptMasterPassword(confirm bool) (string, error) {
	first, err := ReadPassphrase("Master password: ")
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", errors.New("master password cannot be empty")
	}
	if !confirm {
		return string(first), nil
	}

	second, err := ReadPassphrase("Repeat master password: ")
	if err != nil {
		return "", err
	}
	return checkConfirmation(first, second)
}

func checkConfirmation(first, second []byte) (string, error) {
	if string(first) != string(second) {
		return "", ErrPassphraseMismatch
	}
	return string(first), nil
}

// IsTerminal reports whether stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
