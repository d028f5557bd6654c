package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the ethogram home directory
const HomeEnvVar = "ETHOGRAM_HOME"

// GetHome returns the ethogram home directory
// Priority order:
//  1. ETHOGRAM_HOME environment variable (if set)
//  2. .ethogram in the current working directory
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, ".ethogram"), nil
}

// DefaultConfigPath returns $ETHOGRAM_HOME/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// ResolveHomePaths rewrites the default .ethogram-relative paths of cfg
// under ETHOGRAM_HOME when the variable is set
func (c *Config) ResolveHomePaths() {
	home := os.Getenv(HomeEnvVar)
	if home == "" {
		return
	}
	defaults := DefaultConfig()
	if c.LogDir == defaults.LogDir {
		c.LogDir = filepath.Join(home, "logs")
	}
	if c.History.DBPath == defaults.History.DBPath {
		c.History.DBPath = filepath.Join(home, "history.db")
	}
}
