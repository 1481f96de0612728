package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the directory holding the user's config.yaml.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".multiagent-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "multiagent"))
}

// GetDataDir returns the directory for logs.
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".multiagent"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".multiagent"))
}

// DefaultConfigFile is loaded when no --config flag is given, if it exists.
func DefaultConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// DefaultLogFile is where --debug writes unless --log-file says otherwise.
func DefaultLogFile() string {
	return filepath.Join(GetDataDir(), "multiagent.debug.log")
}
