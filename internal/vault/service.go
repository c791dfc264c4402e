package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/objectstore"
)

const (
	vaultsPrefix = "vaults/"
	vaultSuffix  = ".json.enc"
)

// Kind groups vault paths by what they protect.
type Kind string

const (
	KindTeam         Kind = "team"
	KindMachine      Kind = "machine"
	KindOrganization Kind = "organization"
	KindNamed        Kind = "named"
)

// TeamPath is the vault path holding a team's secrets.
func TeamPath(team string) string {
	return path.Join(string(KindTeam), team)
}

// MachinePath is the vault path holding one machine's secrets.
func MachinePath(team, machine string) string {
	return path.Join(string(KindMachine), team, machine)
}

// OrganizationPath is the vault path holding organization-wide secrets.
func OrganizationPath() string {
	return string(KindOrganization)
}

// NamedPath is the vault path for a free-form named vault.
func NamedPath(name string) string {
	return path.Join(string(KindNamed), name)
}

// Service reads and writes vault documents, sealing them when a master
// password is configured.
type Service struct {
	store  *objectstore.Client
	cipher *Cipher

	Log logger.Logger
}

// NewService returns a Service over store. An empty password stores
// documents as plain JSON.
func NewService(store *objectstore.Client, password string) *Service {
	return &Service{store: store, cipher: NewCipher(password)}
}

// Encrypted reports whether writes are sealed.
func (s *Service) Encrypted() bool {
	return s.cipher != nil
}

func vaultKey(vaultPath string) (string, error) {
	clean := path.Clean("/" + vaultPath)
	if vaultPath == "" || clean == "/" || clean != "/"+strings.TrimSuffix(vaultPath, "/") {
		return "", fmt.Errorf("%w: invalid vault path %q", rerrors.ErrInvalidConfig, vaultPath)
	}
	return vaultsPrefix + strings.TrimPrefix(clean, "/") + vaultSuffix, nil
}

// WriteVault serializes data and stores it at vaultPath, replacing any
// previous document.
func (s *Service) WriteVault(ctx context.Context, vaultPath string, data any) error {
	key, err := vaultKey(vaultPath)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding vault %s: %w", vaultPath, err)
	}

	body := plaintext
	if s.cipher != nil {
		if body, err = s.cipher.Seal(plaintext); err != nil {
			return fmt.Errorf("sealing vault %s: %w", vaultPath, err)
		}
	}

	s.Log.Debugf("Writing vault %s (encrypted=%t)", vaultPath, s.cipher != nil)
	return s.store.PutRaw(ctx, key, body)
}

// ReadVault decodes the document at vaultPath into v. It reports false when
// no document exists. Decryption failures are returned, never masked.
func (s *Service) ReadVault(ctx context.Context, vaultPath string, v any) (bool, error) {
	key, err := vaultKey(vaultPath)
	if err != nil {
		return false, err
	}

	body, err := s.store.GetRaw(ctx, key)
	if err != nil {
		return false, err
	}
	if body == nil {
		return false, nil
	}

	plaintext, err := s.open(body)
	if err != nil {
		return false, fmt.Errorf("reading vault %s: %w", vaultPath, err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return false, fmt.Errorf("decoding vault %s: %w", vaultPath, err)
	}
	return true, nil
}

// open returns the plaintext of a stored body. With a password configured
// only envelopes are accepted, so an unauthenticated document written
// straight to the bucket is rejected rather than trusted.
func (s *Service) open(body []byte) ([]byte, error) {
	env, sealed := ParseEnvelope(body)
	switch {
	case s.cipher == nil && sealed:
		return nil, rerrors.ErrPasswordRequired
	case s.cipher == nil:
		return body, nil
	case !sealed:
		return nil, fmt.Errorf("%w: document is not encrypted", rerrors.ErrInvalidEnvelope)
	}
	return s.cipher.OpenEnvelope(env)
}

// IsEncrypted reports whether the stored document at vaultPath is an
// envelope. found is false when nothing is stored there.
func (s *Service) IsEncrypted(ctx context.Context, vaultPath string) (encrypted bool, found bool, err error) {
	key, err := vaultKey(vaultPath)
	if err != nil {
		return false, false, err
	}

	body, err := s.store.GetRaw(ctx, key)
	if err != nil || body == nil {
		return false, false, err
	}
	_, encrypted = ParseEnvelope(body)
	return encrypted, true, nil
}

// DeleteVault removes the document at vaultPath. Deleting a missing vault
// is not an error.
func (s *Service) DeleteVault(ctx context.Context, vaultPath string) error {
	key, err := vaultKey(vaultPath)
	if err != nil {
		return err
	}
	s.Log.Debugf("Deleting vault %s", vaultPath)
	return s.store.DeleteObject(ctx, key)
}

// ListVaults returns the vault paths stored under kind, or every vault path
// when kind is empty, in sorted order.
func (s *Service) ListVaults(ctx context.Context, kind Kind) ([]string, error) {
	prefix := vaultsPrefix
	if kind != "" {
		prefix += string(kind) + "/"
		if kind == KindOrganization {
			prefix = vaultsPrefix + string(kind)
		}
	}

	keys, err := s.store.ListKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}

	paths := []string{}
	for _, key := range keys {
		if !strings.HasSuffix(key, vaultSuffix) {
			continue
		}
		vaultPath := strings.TrimSuffix(strings.TrimPrefix(key, vaultsPrefix), vaultSuffix)
		if kind == KindOrganization && vaultPath != OrganizationPath() {
			continue
		}
		paths = append(paths, vaultPath)
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadTeamVault reads a team's vault.
func (s *Service) ReadTeamVault(ctx context.Context, team string, v any) (bool, error) {
	return s.ReadVault(ctx, TeamPath(team), v)
}

// WriteTeamVault writes a team's vault.
func (s *Service) WriteTeamVault(ctx context.Context, team string, data any) error {
	return s.WriteVault(ctx, TeamPath(team), data)
}

// ReadMachineVault reads a machine's vault.
func (s *Service) ReadMachineVault(ctx context.Context, team, machine string, v any) (bool, error) {
	return s.ReadVault(ctx, MachinePath(team, machine), v)
}

// WriteMachineVault writes a machine's vault.
func (s *Service) WriteMachineVault(ctx context.Context, team, machine string, data any) error {
	return s.WriteVault(ctx, MachinePath(team, machine), data)
}

// ReadOrganizationVault reads the organization vault.
func (s *Service) ReadOrganizationVault(ctx context.Context, v any) (bool, error) {
	return s.ReadVault(ctx, OrganizationPath(), v)
}

// WriteOrganizationVault writes the organization vault.
func (s *Service) WriteOrganizationVault(ctx context.Context, data any) error {
	return s.WriteVault(ctx, OrganizationPath(), data)
}
