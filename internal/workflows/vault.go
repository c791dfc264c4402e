package workflows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rediacc/rdc/internal/audit"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/vault"
)

// VaultOptions identifies a vault document.
type VaultOptions struct {
	// Path is the vault path, e.g. "team/ops" or "machine/ops/web-1".
	Path string

	// Password overrides RDC_MASTER_PASSWORD.
	Password string

	Log logger.Logger
}

// VaultGet reads and decrypts a vault document.
//
// Returns ErrVaultNotFound if nothing is stored at the path,
// ErrPasswordRequired if it is encrypted and no password is available, and
// ErrDecryptFailed if the password is wrong.
func VaultGet(ctx context.Context, opts VaultOptions) (json.RawMessage, error) {
	svc, err := openVault(ctx, opts.Password, opts.Log)
	if err != nil {
		return nil, err
	}

	var data json.RawMessage
	found, err := svc.ReadVault(ctx, opts.Path, &data)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrVaultNotFound, opts.Path)
	}
	return data, nil
}

// VaultSetOptions configures the vault set workflow.
type VaultSetOptions struct {
	VaultOptions

	// Document is the JSON payload to store.
	Document []byte
}

// VaultSetResult contains the outcome of a vault write.
type VaultSetResult struct {
	Path      string
	Encrypted bool
}

// VaultSet encrypts (when a password is available) and stores a document.
func VaultSet(ctx context.Context, opts VaultSetOptions) (*VaultSetResult, error) {
	if !json.Valid(opts.Document) {
		return nil, fmt.Errorf("%w: vault document is not valid JSON", rerrors.ErrInvalidInput)
	}

	svc, err := openVault(ctx, opts.Password, opts.Log)
	if err != nil {
		return nil, err
	}

	if err := svc.WriteVault(ctx, opts.Path, json.RawMessage(opts.Document)); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("vault.set")
	entry.Path = opts.Path
	audit.Log(entry)

	return &VaultSetResult{Path: opts.Path, Encrypted: svc.Encrypted()}, nil
}

// VaultDelete removes a vault document. Deleting a missing document succeeds.
func VaultDelete(ctx context.Context, opts VaultOptions) error {
	svc, err := openVault(ctx, opts.Password, opts.Log)
	if err != nil {
		return err
	}

	if err := svc.DeleteVault(ctx, opts.Path); err != nil {
		return err
	}

	entry := audit.NewEntry("vault.delete")
	entry.Path = opts.Path
	audit.Log(entry)
	return nil
}

// VaultListOptions configures the vault list workflow.
type VaultListOptions struct {
	// Kind restricts the listing to team, machine, organization or named
	// vaults. Empty lists everything.
	Kind vault.Kind

	Log logger.Logger
}

// VaultList returns stored vault paths. It never needs the master password.
func VaultList(ctx context.Context, opts VaultListOptions) ([]string, error) {
	svc, err := openVault(ctx, "", opts.Log)
	if err != nil {
		return nil, err
	}
	return svc.ListVaults(ctx, opts.Kind)
}

// VaultStatusResult describes how a vault document is stored.
type VaultStatusResult struct {
	Path      string
	Exists    bool
	Encrypted bool
}

// VaultStatus reports whether a document exists and whether it is encrypted,
// without decrypting it.
func VaultStatus(ctx context.Context, opts VaultOptions) (*VaultStatusResult, error) {
	svc, err := openVault(ctx, "", opts.Log)
	if err != nil {
		return nil, err
	}

	encrypted, found, err := svc.IsEncrypted(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	return &VaultStatusResult{Path: opts.Path, Exists: found, Encrypted: encrypted}, nil
}
