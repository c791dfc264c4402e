package stores

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
)

// Kind discriminates store entries by backend.
type Kind string

const (
	KindGit   Kind = "git"
	KindVault Kind = "vault"
)

// Entry describes how to reach one config store. Exactly one of Git and
// Vault is set, matching Type.
type Entry struct {
	Type  Kind        `toml:"type" json:"type"`
	Git   *GitEntry   `toml:"git,omitempty" json:"git,omitempty"`
	Vault *VaultEntry `toml:"vault,omitempty" json:"vault,omitempty"`
}

// GitEntry locates configs on a branch of a Git remote.
type GitEntry struct {
	URL         string `toml:"url" json:"url"`
	Branch      string `toml:"branch,omitempty" json:"branch,omitempty"`
	Path        string `toml:"path,omitempty" json:"path,omitempty"`
	AuthorName  string `toml:"author_name,omitempty" json:"authorName,omitempty"`
	AuthorEmail string `toml:"author_email,omitempty" json:"authorEmail,omitempty"`
}

// VaultEntry locates configs in a Vault KV v2 mount.
type VaultEntry struct {
	Address   string `toml:"address" json:"address"`
	Token     string `toml:"token,omitempty" json:"token,omitempty"`
	Mount     string `toml:"mount,omitempty" json:"mount,omitempty"`
	Prefix    string `toml:"prefix,omitempty" json:"prefix,omitempty"`
	Namespace string `toml:"namespace,omitempty" json:"namespace,omitempty"`
}

const (
	defaultGitBranch   = "main"
	defaultGitPath     = "configs"
	defaultAuthorName  = "rdc"
	defaultAuthorEmail = "rdc@localhost"
	defaultVaultMount  = "secret"
	defaultVaultPrefix = "rdc/configs"
)

// Validate checks that the entry names a known kind and carries the fields
// that kind needs.
func (e Entry) Validate() error {
	switch e.Type {
	case KindGit:
		if e.Git == nil || e.Git.URL == "" {
			return fmt.Errorf("%w: git store requires a url", rerrors.ErrInvalidStoreEntry)
		}
	case KindVault:
		if e.Vault == nil || e.Vault.Address == "" {
			return fmt.Errorf("%w: vault store requires an address", rerrors.ErrInvalidStoreEntry)
		}
	default:
		return fmt.Errorf("%w: %q", rerrors.ErrInvalidStoreType, e.Type)
	}
	return nil
}

// Identity returns a key identifying the backend connection, so entries
// pointing at the same remote can share cached verification results. Vault
// identities carry a fingerprint of the token, never the token itself.
func (e Entry) Identity() string {
	switch e.Type {
	case KindGit:
		if e.Git != nil {
			return "git|" + e.Git.URL
		}
	case KindVault:
		if e.Vault != nil {
			return "vault|" + strings.TrimRight(e.Vault.Address, "/") + "|" + e.Vault.Namespace + "|" + tokenFingerprint(e.Vault.Token)
		}
	}
	return string(e.Type)
}

func tokenFingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

// New returns the adapter for entry's kind.
func New(entry Entry, log logger.Logger) (Adapter, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	switch entry.Type {
	case KindGit:
		adapter := NewGitAdapter(*entry.Git)
		adapter.Log = log.Named("git")
		return adapter, nil
	case KindVault:
		adapter := NewVaultAdapter(*entry.Vault)
		adapter.Log = log.Named("kv")
		return adapter, nil
	}
	return nil, fmt.Errorf("%w: %q", rerrors.ErrInvalidStoreType, entry.Type)
}
