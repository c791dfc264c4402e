package workflows

import (
	"context"

	"github.com/rediacc/rdc/internal/configs"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/objectstore"
	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/stores"
	"github.com/rediacc/rdc/internal/vault"
)

// ObjectStoreDialer builds the object-store client described by cfg.
type ObjectStoreDialer func(ctx context.Context, cfg configs.S3Config) (*objectstore.Client, error)

// AdapterFactory builds the adapter for a store entry.
type AdapterFactory func(entry stores.Entry, log logger.Logger) (stores.Adapter, error)

var (
	dialObjectStore ObjectStoreDialer = dialS3
	newAdapter      AdapterFactory    = stores.New
)

// SetObjectStoreDialer replaces the object-store dialer and returns a
// function that restores the previous one. Tests use it to run workflows
// against an in-memory bucket.
func SetObjectStoreDialer(dialer ObjectStoreDialer) (restore func()) {
	previous := dialObjectStore
	dialObjectStore = dialer
	return func() { dialObjectStore = previous }
}

// SetAdapterFactory replaces the store adapter factory and returns a function
// that restores the previous one.
func SetAdapterFactory(factory AdapterFactory) (restore func()) {
	previous := newAdapter
	newAdapter = factory
	return func() { newAdapter = previous }
}

func dialS3(ctx context.Context, cfg configs.S3Config) (*objectstore.Client, error) {
	return objectstore.Dial(ctx, objectstore.Options{
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		Bucket:          cfg.Bucket,
		Prefix:          cfg.Prefix,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
		ForcePathStyle:  cfg.ForcePathStyle,
	})
}

// openObjectStore loads the configuration and dials its bucket.
func openObjectStore(ctx context.Context, log logger.Logger) (*objectstore.Client, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	client, err := dialObjectStore(ctx, config.S3)
	if err != nil {
		return nil, err
	}
	client.Log = log.Named("s3")
	log.Debugf("Using bucket %s with prefix %q", client.Bucket(), client.Prefix())
	return client, nil
}

// openAdapter loads the configuration and builds the adapter for store.
func openAdapter(store string, log logger.Logger) (stores.Entry, stores.Adapter, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return stores.Entry{}, nil, err
	}

	entry, err := config.Store(store)
	if err != nil {
		return stores.Entry{}, nil, err
	}

	adapter, err := newAdapter(entry, log)
	if err != nil {
		return stores.Entry{}, nil, err
	}
	return entry, adapter, nil
}

// masterPassword prefers an explicitly supplied password over the environment.
func masterPassword(password string) string {
	if password != "" {
		return password
	}
	return configs.MasterPassword()
}

func openVault(ctx context.Context, password string, log logger.Logger) (*vault.Service, error) {
	client, err := openObjectStore(ctx, log)
	if err != nil {
		return nil, err
	}
	svc := vault.NewService(client, masterPassword(password))
	svc.Log = log.Named("vault")
	return svc, nil
}

func openState(ctx context.Context, password string, log logger.Logger) (*vault.StateStore, error) {
	client, err := openObjectStore(ctx, log)
	if err != nil {
		return nil, err
	}
	state := vault.NewStateStore(client, masterPassword(password))
	state.Log = log.Named("state")
	return state, nil
}

func openQueue(ctx context.Context, log logger.Logger) (*queue.Queue, error) {
	client, err := openObjectStore(ctx, log)
	if err != nil {
		return nil, err
	}
	q := queue.New(client)
	q.Log = log.Named("queue")
	return q, nil
}
