package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rediacc/rdc/internal/configs"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/objectstore"
	"github.com/rediacc/rdc/internal/objectstore/objectstoretest"
	"github.com/rediacc/rdc/internal/stores"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

// memStore is an in-memory config store with the same push rules as the
// Git and Vault adapters.
type memStore struct {
	configs map[string]stores.RdcConfig
}

func (m *memStore) Push(ctx context.Context, config *stores.RdcConfig, name string) (*stores.PushResult, error) {
	remote, ok := m.configs[name]
	if ok && remote.ID != config.ID {
		return &stores.PushResult{RemoteVersion: remote.Version, Err: rerrors.ErrGUIDMismatch}, nil
	}
	if ok && remote.Version > config.Version {
		return &stores.PushResult{RemoteVersion: remote.Version, Err: rerrors.ErrVersionConflict}, nil
	}
	m.configs[name] = *config
	return &stores.PushResult{Success: true, RemoteVersion: remote.Version}, nil
}

func (m *memStore) Pull(ctx context.Context, name string) (*stores.PullResult, error) {
	config, ok := m.configs[name]
	if !ok {
		return &stores.PullResult{Err: rerrors.ErrConfigNotFound}, nil
	}
	return &stores.PullResult{Success: true, Config: &config}, nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	names := []string{}
	for name := range m.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memStore) Delete(ctx context.Context, name string) (*stores.DeleteResult, error) {
	if _, ok := m.configs[name]; !ok {
		return &stores.DeleteResult{Err: rerrors.ErrConfigNotFound}, nil
	}
	delete(m.configs, name)
	return &stores.DeleteResult{Success: true}, nil
}

func (m *memStore) Verify(ctx context.Context) bool {
	return true
}

// setupCLIEnv points the commands at temporary settings, an in-memory
// bucket and an in-memory config store.
func setupCLIEnv(t *testing.T) *objectstoretest.Fake {
	t.Helper()

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	original := configs.UserSettings
	configs.UserSettings = &configs.Settings{ConfigDir: t.TempDir(), DataDir: t.TempDir()}
	t.Cleanup(func() { configs.UserSettings = original })
	t.Setenv(configs.MasterPasswordEnv, "")

	config := &configs.Config{
		S3: configs.S3Config{Bucket: "rdc-test", Prefix: "cli"},
		Stores: map[string]stores.Entry{
			"prod": {Type: stores.KindGit, Git: &stores.GitEntry{URL: "https://git.example.com/configs.git"}},
		},
	}
	if err := configs.SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	fake := objectstoretest.New()
	mem := &memStore{configs: map[string]stores.RdcConfig{}}

	t.Cleanup(workflows.SetObjectStoreDialer(func(ctx context.Context, cfg configs.S3Config) (*objectstore.Client, error) {
		return objectstore.New(fake, cfg.Bucket, cfg.Prefix), nil
	}))
	t.Cleanup(workflows.SetAdapterFactory(func(entry stores.Entry, log logger.Logger) (stores.Adapter, error) {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		return mem, nil
	}))

	return fake
}

// runCLI executes args against a fresh root command and returns everything
// written to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{
		Use:           "rdc",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	Register(root)
	resetCobraFlagState(root)
	root.SetArgs(args)

	return captureOutput(root.Execute)
}

// writeTestFile writes content to a file in a fresh temp directory.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// captureOutput captures both stdout and stderr during execution of fn.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, err := os.Pipe()
	if err != nil {
		return "", err
	}
	stderrReader, stderrWriter, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	collect := func(r io.Reader) {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputChan <- buf.String()
	}
	go collect(stdoutReader)
	go collect(stderrReader)

	runErr := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, runErr
}
