package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ethogram/internal/config"
)

// loadConfig reads the file named by --config, or .ethogram/config.yaml in
// the working directory, and resolves paths under ETHOGRAM_HOME
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ResolveHomePaths()
	return cfg, nil
}

// stringFlag returns a pointer to the flag value when it was set explicitly
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
