package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the directory name for bstats configuration.
	DirName = "bstats"

	// FileName is the configuration file name.
	FileName = "config.yaml"

	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "BSTATS"
)

// Dir returns the bstats configuration directory, ~/.config/bstats unless
// XDG_CONFIG_HOME is set.
func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, DirName), nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// EnsureDir ensures that a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to ensure directory %s: %w", path, err)
	}
	return nil
}
