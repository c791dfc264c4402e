package configs

import (
	"fmt"
	"os"
	"sort"

	rerrors "github.com/rediacc/rdc/internal/errors"
	"github.com/rediacc/rdc/internal/stores"
)

const (
	// MasterPasswordEnv names the variable holding the vault master password.
	MasterPasswordEnv = "RDC_MASTER_PASSWORD"

	// VaultTokenEnv names the variable used when a vault store has no token.
	VaultTokenEnv = "VAULT_TOKEN"
)

// Config is the on-disk rdc configuration.
type Config struct {
	S3     S3Config                `toml:"s3"`
	Stores map[string]stores.Entry `toml:"stores"`
}

// S3Config describes the bucket used for vaults, state and the queue.
type S3Config struct {
	Endpoint        string `toml:"endpoint,omitempty"`
	Region          string `toml:"region,omitempty"`
	Bucket          string `toml:"bucket"`
	Prefix          string `toml:"prefix,omitempty"`
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
	SessionToken    string `toml:"session_token,omitempty"`
	ForcePathStyle  bool   `toml:"force_path_style,omitempty"`
}

// LoadConfig loads the configuration file. A missing file yields an empty config.
func LoadConfig() (*Config, error) {
	configPath := UserSettings.ConfigPath()

	config := &Config{
		Stores: make(map[string]stores.Entry),
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Stores == nil {
		config.Stores = make(map[string]stores.Entry)
	}

	return config, nil
}

// SaveConfig saves the configuration file.
func SaveConfig(config *Config) error {
	if err := SaveTOML(UserSettings.ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Store returns the named store entry with environment overrides applied.
func (c *Config) Store(name string) (stores.Entry, error) {
	entry, ok := c.Stores[name]
	if !ok {
		return stores.Entry{}, fmt.Errorf("%w: %s", rerrors.ErrStoreNotFound, name)
	}

	if entry.Vault != nil && entry.Vault.Token == "" {
		vault := *entry.Vault
		vault.Token = os.Getenv(VaultTokenEnv)
		entry.Vault = &vault
	}

	return entry, nil
}

// SetStore adds or replaces a store entry after validating it.
func (c *Config) SetStore(name string, entry stores.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if c.Stores == nil {
		c.Stores = make(map[string]stores.Entry)
	}
	c.Stores[name] = entry
	return nil
}

// RemoveStore deletes a store entry. It reports whether the entry existed.
func (c *Config) RemoveStore(name string) bool {
	if _, ok := c.Stores[name]; !ok {
		return false
	}
	delete(c.Stores, name)
	return true
}

// StoreNames returns the configured store names in sorted order.
func (c *Config) StoreNames() []string {
	names := make([]string, 0, len(c.Stores))
	for name := range c.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MasterPassword returns the master password from the environment, if set.
func MasterPassword() string {
	return os.Getenv(MasterPasswordEnv)
}
