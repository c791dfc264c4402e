package workflows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rediacc/rdc/internal/audit"
	"github.com/rediacc/rdc/internal/configs"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/stores"
)

// PushOptions configures the push workflow.
type PushOptions struct {
	// Store is the configured store entry to push to.
	Store string

	// Name is the config name on the backend.
	Name string

	// Document is the JSON-encoded RdcConfig.
	Document []byte

	// NewLineage assigns a fresh id (and version 1 when unset) before
	// pushing, starting a new config lineage.
	NewLineage bool

	Log logger.Logger
}

// PushResult contains the outcome of a push.
type PushResult struct {
	Store         string
	Name          string
	ID            string
	Version       int
	RemoteVersion int
}

// Push uploads a config document to a store.
//
// Returns ErrStoreNotFound if the store is not configured.
// Returns ErrInvalidInput if the document is not valid JSON.
// Returns ErrGUIDMismatch or ErrVersionConflict if the remote copy must not
// be overwritten.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	var config stores.RdcConfig
	if err := json.Unmarshal(opts.Document, &config); err != nil {
		return nil, fmt.Errorf("%w: config is not valid JSON: %v", rerrors.ErrInvalidInput, err)
	}

	if opts.NewLineage {
		config.ID = uuid.NewString()
		if config.Version == 0 {
			config.Version = 1
		}
		opts.Log.Infof("Starting new lineage %s", config.ID)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	_, adapter, err := openAdapter(opts.Store, opts.Log)
	if err != nil {
		return nil, err
	}

	result, err := adapter.Push(ctx, &config, opts.Name)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, result.Err
	}

	entry := audit.NewEntry("push")
	entry.Store = opts.Store
	entry.Name = opts.Name
	entry.ID = config.ID
	entry.Version = config.Version
	audit.Log(entry)

	return &PushResult{
		Store:         opts.Store,
		Name:          opts.Name,
		ID:            config.ID,
		Version:       config.Version,
		RemoteVersion: result.RemoteVersion,
	}, nil
}

// PullOptions configures the pull workflow.
type PullOptions struct {
	Store string
	Name  string
	Log   logger.Logger
}

// Pull downloads a config document from a store.
//
// Returns ErrConfigNotFound if nothing is stored under the name and
// ErrConfigCorrupt if the stored document cannot be parsed.
func Pull(ctx context.Context, opts PullOptions) (*stores.RdcConfig, error) {
	_, adapter, err := openAdapter(opts.Store, opts.Log)
	if err != nil {
		return nil, err
	}

	result, err := adapter.Pull(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, result.Err
	}
	return result.Config, nil
}

// ListConfigsOptions configures the list workflow.
type ListConfigsOptions struct {
	Store string
	Log   logger.Logger
}

// ListConfigs returns the config names stored in a store, sorted.
func ListConfigs(ctx context.Context, opts ListConfigsOptions) ([]string, error) {
	_, adapter, err := openAdapter(opts.Store, opts.Log)
	if err != nil {
		return nil, err
	}
	return adapter.List(ctx)
}

// DeleteConfigOptions configures the delete workflow.
type DeleteConfigOptions struct {
	Store string
	Name  string
	Log   logger.Logger
}

// DeleteConfig removes a config document from a store.
//
// Returns ErrConfigNotFound if nothing is stored under the name.
func DeleteConfig(ctx context.Context, opts DeleteConfigOptions) error {
	_, adapter, err := openAdapter(opts.Store, opts.Log)
	if err != nil {
		return err
	}

	result, err := adapter.Delete(ctx, opts.Name)
	if err != nil {
		return err
	}
	if !result.Success {
		return result.Err
	}

	entry := audit.NewEntry("delete")
	entry.Store = opts.Store
	entry.Name = opts.Name
	audit.Log(entry)
	return nil
}

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	// Store is the entry to verify. Ignored when All is set.
	Store string

	// All verifies every configured store.
	All bool

	// Cache reuses recent results for entries sharing a backend. Nil uses a
	// fresh cache for this call.
	Cache *stores.VerifyCache

	Log logger.Logger
}

// VerifyStatus is the health of one store.
type VerifyStatus struct {
	Store string
	Kind  stores.Kind
	OK    bool
}

// Verify checks one or all configured stores. Backend failures are reported
// as OK=false; only configuration problems are returned as errors.
func Verify(ctx context.Context, opts VerifyOptions) ([]VerifyStatus, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	names := []string{opts.Store}
	if opts.All {
		names = config.StoreNames()
	}

	cache := opts.Cache
	if cache == nil {
		cache = stores.NewVerifyCache(0)
	}

	statuses := make([]VerifyStatus, 0, len(names))
	for _, name := range names {
		entry, err := config.Store(name)
		if err != nil {
			return nil, err
		}

		adapter, err := newAdapter(entry, opts.Log)
		if err != nil {
			if !opts.All {
				return nil, err
			}
			opts.Log.Warnf("Skipping store %s: %v", name, err)
			statuses = append(statuses, VerifyStatus{Store: name, Kind: entry.Type})
			continue
		}

		ok := cache.Verify(ctx, entry, adapter)
		opts.Log.Infof("Store %s (%s): ok=%t", name, entry.Type, ok)
		statuses = append(statuses, VerifyStatus{Store: name, Kind: entry.Type, OK: ok})
	}
	return statuses, nil
}

// AddStoreOptions configures the add-store workflow.
type AddStoreOptions struct {
	Name  string
	Entry stores.Entry

	// Force replaces an existing entry with the same name.
	Force bool
}

// AddStore saves a store entry in the local configuration.
func AddStore(ctx context.Context, opts AddStoreOptions) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}

	if _, exists := config.Stores[opts.Name]; exists && !opts.Force {
		return fmt.Errorf("%w: store %s already exists (use --force to replace it)", rerrors.ErrInvalidStoreEntry, opts.Name)
	}
	if err := config.SetStore(opts.Name, opts.Entry); err != nil {
		return err
	}
	return configs.SaveConfig(config)
}

// RemoveStore deletes a store entry from the local configuration.
//
// Returns ErrStoreNotFound if no entry has that name.
func RemoveStore(ctx context.Context, name string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}

	if !config.RemoveStore(name) {
		return fmt.Errorf("%w: %s", rerrors.ErrStoreNotFound, name)
	}
	return configs.SaveConfig(config)
}

// ConfiguredStore summarizes one entry of the local configuration.
type ConfiguredStore struct {
	Name     string
	Kind     stores.Kind
	Location string
}

// ListStores returns the configured store entries sorted by name.
func ListStores(ctx context.Context) ([]ConfiguredStore, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	out := make([]ConfiguredStore, 0, len(config.Stores))
	for _, name := range config.StoreNames() {
		entry := config.Stores[name]
		location := ""
		switch {
		case entry.Git != nil:
			location = entry.Git.URL
		case entry.Vault != nil:
			location = entry.Vault.Address
		}
		out = append(out, ConfiguredStore{Name: name, Kind: entry.Type, Location: location})
	}
	return out, nil
}
