package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	rerrors "github.com/rediacc/rdc/internal/errors"
)

// RdcConfig is a versioned configuration document. ID identifies its
// lineage; Version is a writer-supplied counter starting at 1.
type RdcConfig struct {
	ID           string         `json:"id"`
	Version      int            `json:"version"`
	Machines     map[string]any `json:"machines"`
	Storages     map[string]any `json:"storages"`
	Repositories map[string]any `json:"repositories"`
}

// Validate checks the identity fields every stored document must carry.
func (c *RdcConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", rerrors.ErrInvalidConfig)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", rerrors.ErrInvalidConfig)
	}
	if c.Version < 1 {
		return fmt.Errorf("%w: version must be at least 1, got %d", rerrors.ErrInvalidConfig, c.Version)
	}
	return nil
}

// PushResult reports the outcome of a push. RemoteVersion is the version
// found on the backend before the write, or 0 when there was none.
type PushResult struct {
	Success       bool
	RemoteVersion int
	Err           error
}

// PullResult reports the outcome of a pull.
type PullResult struct {
	Success bool
	Config  *RdcConfig
	Err     error
}

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	Success bool
	Err     error
}

// Adapter is the config store contract implemented once per backend.
type Adapter interface {
	// Push writes config under name unless the remote copy belongs to a
	// different lineage or is newer.
	Push(ctx context.Context, config *RdcConfig, name string) (*PushResult, error)

	// Pull reads the config stored under name.
	Pull(ctx context.Context, name string) (*PullResult, error)

	// List returns stored config names in lexicographic order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the config stored under name.
	Delete(ctx context.Context, name string) (*DeleteResult, error)

	// Verify checks the backend and reports whether it is usable.
	Verify(ctx context.Context) bool
}

// checkPush decides whether config may overwrite remote. A nil remote means
// nothing is stored (or what is stored could not be parsed).
func checkPush(remote, config *RdcConfig) *PushResult {
	if remote == nil {
		return &PushResult{Success: true}
	}

	if remote.ID != config.ID {
		return &PushResult{
			RemoteVersion: remote.Version,
			Err: fmt.Errorf("%w: remote has %s, local has %s; these are different configs",
				rerrors.ErrGUIDMismatch, remote.ID, config.ID),
		}
	}

	if remote.Version > config.Version {
		return &PushResult{
			RemoteVersion: remote.Version,
			Err: fmt.Errorf("%w: remote version %d is newer than local version %d",
				rerrors.ErrVersionConflict, remote.Version, config.Version),
		}
	}

	return &PushResult{Success: true, RemoteVersion: remote.Version}
}

// decodeConfig parses a stored document. Documents without an id are
// treated as corrupt.
func decodeConfig(data []byte) (*RdcConfig, error) {
	var config RdcConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrConfigCorrupt, err)
	}
	if config.ID == "" {
		return nil, fmt.Errorf("%w: missing id", rerrors.ErrConfigCorrupt)
	}
	return &config, nil
}

func encodeConfig(config *RdcConfig) ([]byte, error) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// validName rejects names that would escape the configured directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", rerrors.ErrInvalidConfig, name)
	}
	return nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", rerrors.ErrConfigNotFound, name)
}
