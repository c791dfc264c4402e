// Package configs manages the local rdc configuration.
//
// Configuration is stored in TOML format at <config dir>/rdc/config.toml and
// describes where state lives, never the state itself:
//
//   - [s3]: the S3-compatible bucket holding vaults, state.json and the queue
//   - [stores.<name>]: named config stores, each either a Git remote or a
//     Vault KV v2 mount
//
// # Environment Overrides
//
// A few values are read from the environment so they never have to be
// written to disk:
//
//   - RDC_CONFIG_DIR relocates the config directory
//   - RDC_MASTER_PASSWORD supplies the master password for encrypted vaults
//   - VAULT_TOKEN fills in a vault store's token when the entry has none
//   - RDC_ACTOR replaces user@host in audit entries
//
// S3 credentials fall back to the AWS SDK default chain when no static keys
// are configured.
//
// # Settings
//
// UserSettings is initialized at startup with the config and data
// directories. Tests replace it with temporary directories.
package configs
