package stores

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
)

func TestCheckPush(t *testing.T) {
	tests := []struct {
		name    string
		remote  *RdcConfig
		local   *RdcConfig
		wantErr error
	}{
		{"no remote", nil, &RdcConfig{ID: "a", Version: 1}, nil},
		{"newer local", &RdcConfig{ID: "a", Version: 1}, &RdcConfig{ID: "a", Version: 2}, nil},
		{"equal versions", &RdcConfig{ID: "a", Version: 4}, &RdcConfig{ID: "a", Version: 4}, nil},
		{"stale local", &RdcConfig{ID: "a", Version: 5}, &RdcConfig{ID: "a", Version: 4}, rerrors.ErrVersionConflict},
		{"other lineage", &RdcConfig{ID: "a", Version: 1}, &RdcConfig{ID: "b", Version: 1}, rerrors.ErrGUIDMismatch},
		{"other lineage newer", &RdcConfig{ID: "a", Version: 1}, &RdcConfig{ID: "b", Version: 7}, rerrors.ErrGUIDMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkPush(tt.remote, tt.local)
			if tt.wantErr == nil {
				if !result.Success || result.Err != nil {
					t.Fatalf("Expected success, got %+v", result)
				}
				return
			}
			if result.Success || !errors.Is(result.Err, tt.wantErr) {
				t.Fatalf("Expected %v, got %+v", tt.wantErr, result)
			}
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	if _, err := decodeConfig([]byte("{oops")); !errors.Is(err, rerrors.ErrConfigCorrupt) {
		t.Errorf("Expected ErrConfigCorrupt for bad JSON, got %v", err)
	}
	if _, err := decodeConfig([]byte(`{"version":1}`)); !errors.Is(err, rerrors.ErrConfigCorrupt) {
		t.Errorf("Expected ErrConfigCorrupt for missing id, got %v", err)
	}

	config, err := decodeConfig([]byte(`{"id":"g1","version":2,"machines":{"m":{"ip":"1.2.3.4"}}}`))
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}
	if config.ID != "g1" || config.Version != 2 || config.Machines["m"] == nil {
		t.Errorf("Unexpected config: %+v", config)
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"prod", "team-a.prod", "with space"} {
		if err := validName(name); err != nil {
			t.Errorf("validName(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := validName(name); err == nil {
			t.Errorf("validName(%q) accepted an invalid name", name)
		}
	}
}

func TestNewSelectsAdapterByKind(t *testing.T) {
	gitAdapter, err := New(Entry{Type: KindGit, Git: &GitEntry{URL: "file:///tmp/x"}}, logger.Logger{})
	if err != nil {
		t.Fatalf("New(git) failed: %v", err)
	}
	if _, ok := gitAdapter.(*GitAdapter); !ok {
		t.Errorf("Expected *GitAdapter, got %T", gitAdapter)
	}

	vaultAdapter, err := New(Entry{Type: KindVault, Vault: &VaultEntry{Address: "http://vault"}}, logger.Logger{})
	if err != nil {
		t.Fatalf("New(vault) failed: %v", err)
	}
	if _, ok := vaultAdapter.(*VaultAdapter); !ok {
		t.Errorf("Expected *VaultAdapter, got %T", vaultAdapter)
	}

	if _, err := New(Entry{Type: "s3"}, logger.Logger{}); !errors.Is(err, rerrors.ErrInvalidStoreType) {
		t.Errorf("Expected ErrInvalidStoreType, got %v", err)
	}
	if _, err := New(Entry{Type: KindGit}, logger.Logger{}); !errors.Is(err, rerrors.ErrInvalidStoreEntry) {
		t.Errorf("Expected ErrInvalidStoreEntry, got %v", err)
	}
}

func TestEntryIdentity(t *testing.T) {
	a := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200/", Prefix: "a"}}
	b := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Prefix: "b"}}
	c := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Namespace: "team"}}

	if a.Identity() != b.Identity() {
		t.Errorf("Entries on the same connection should share identity: %q vs %q", a.Identity(), b.Identity())
	}
	if a.Identity() == c.Identity() {
		t.Error("Different namespaces must not share identity")
	}

	good := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Token: "s.good-token"}}
	revoked := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Token: "s.revoked-token"}}
	if good.Identity() == revoked.Identity() {
		t.Error("Different tokens must not share identity")
	}
	if strings.Contains(good.Identity(), "s.good-token") {
		t.Errorf("Identity leaks the token: %q", good.Identity())
	}
}

type countingAdapter struct {
	Adapter
	calls int
	ok    bool
}

func (c *countingAdapter) Verify(ctx context.Context) bool {
	c.calls++
	return c.ok
}

func TestVerifyCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewVerifyCache(time.Minute)
	cache.now = func() time.Time { return now }

	entry := Entry{Type: KindGit, Git: &GitEntry{URL: "git@example.com:a.git"}}
	adapter := &countingAdapter{ok: true}
	ctx := context.Background()

	if !cache.Verify(ctx, entry, adapter) || !cache.Verify(ctx, entry, adapter) {
		t.Fatal("Expected verify to succeed")
	}
	if adapter.calls != 1 {
		t.Fatalf("Expected 1 check within TTL, got %d", adapter.calls)
	}

	now = now.Add(2 * time.Minute)
	cache.Verify(ctx, entry, adapter)
	if adapter.calls != 2 {
		t.Fatalf("Expected a new check after TTL expiry, got %d", adapter.calls)
	}

	cache.Invalidate(entry)
	cache.Verify(ctx, entry, adapter)
	if adapter.calls != 3 {
		t.Fatalf("Expected a new check after invalidation, got %d", adapter.calls)
	}

	good := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Token: "good"}}
	revoked := Entry{Type: KindVault, Vault: &VaultEntry{Address: "https://vault:8200", Token: "revoked"}}
	if !cache.Verify(ctx, good, &countingAdapter{ok: true}) {
		t.Error("Expected the good token to verify")
	}
	if cache.Verify(ctx, revoked, &countingAdapter{ok: false}) {
		t.Error("A revoked token must not reuse the good token's cached result")
	}
}
