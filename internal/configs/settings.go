package configs

import (
	"log"
	"os"
	"path/filepath"
)

type Settings struct {
	ConfigDir string
	DataDir   string
}

var UserSettings *Settings

func init() {
	settings, err := DefaultSettings()
	if err != nil {
		log.Fatalf("error resolving rdc directories: %s", err)
	}
	UserSettings = settings
}

// DefaultSettings resolves the config and data directories from the
// environment, honoring RDC_CONFIG_DIR and XDG_DATA_HOME.
func DefaultSettings() (*Settings, error) {
	configDir := os.Getenv("RDC_CONFIG_DIR")
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(userConfigDir, "rdc")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir: configDir,
		DataDir:   filepath.Join(dataDir, "rdc"),
	}, nil
}

// ConfigPath returns the path of config.toml.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, "config.toml")
}

// AuditLogPath returns the path of the JSONL audit log.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}
