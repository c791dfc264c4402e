package workflows

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/configs"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
)

// ConfigSummary describes the local configuration without secrets.
type ConfigSummary struct {
	Path        string
	S3          configs.S3Config
	Stores      []ConfiguredStore
	HasPassword bool
}

// ShowConfig summarizes the local configuration. Credentials are masked.
func ShowConfig(ctx context.Context) (*ConfigSummary, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	s3 := config.S3
	s3.AccessKeyID = mask(s3.AccessKeyID)
	s3.SecretAccessKey = mask(s3.SecretAccessKey)
	s3.SessionToken = mask(s3.SessionToken)

	list, err := ListStores(ctx)
	if err != nil {
		return nil, err
	}

	return &ConfigSummary{
		Path:        configs.UserSettings.ConfigPath(),
		S3:          s3,
		Stores:      list,
		HasPassword: configs.MasterPassword() != "",
	}, nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}

// SetObjectStoreOptions configures the set-s3 workflow.
type SetObjectStoreOptions struct {
	S3 configs.S3Config

	// Verify checks the bucket before saving.
	Verify bool

	Log logger.Logger
}

// SetObjectStore replaces the S3 section of the local configuration.
//
// Returns ErrInvalidInput if no bucket is given. With Verify set, a bucket
// that cannot be reached is not saved.
func SetObjectStore(ctx context.Context, opts SetObjectStoreOptions) error {
	if opts.S3.Bucket == "" {
		return fmt.Errorf("%w: a bucket is required", rerrors.ErrInvalidInput)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}

	if opts.Verify {
		client, err := dialObjectStore(ctx, opts.S3)
		if err != nil {
			return err
		}
		client.Log = opts.Log.Named("s3")
		if err := client.VerifyAccess(ctx); err != nil {
			return err
		}
		opts.Log.Infof("Bucket %s is reachable", opts.S3.Bucket)
	}

	config.S3 = opts.S3
	return configs.SaveConfig(config)
}
