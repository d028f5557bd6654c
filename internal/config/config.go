package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/ethogram/internal/behavior"
	"github.com/harrison/ethogram/internal/export"
)

// Treatment assignment modes
const (
	TreatmentSequence = "sequence" // 1..n in file processing order
	TreatmentFilename = "filename" // input file name without extension
)

// AliasList holds the alias spellings of one canonical label.
// In YAML it may be written as a single string or a list.
type AliasList []string

// UnmarshalYAML accepts either a scalar or a sequence node
func (a *AliasList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = AliasList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("line %d: alias must be a string or a list of strings", node.Line)
	}
}

// BehaviorsConfig holds the label vocabulary used during aggregation
type BehaviorsConfig struct {
	// Targets are the categories always reported for every treatment
	Targets []string `yaml:"targets"`

	// Aliases maps a canonical label to the spellings rewritten to it
	Aliases map[string]AliasList `yaml:"aliases"`
}

// AliasTable converts the configured aliases for the behavior package
func (b BehaviorsConfig) AliasTable() behavior.AliasTable {
	table := make(behavior.AliasTable, len(b.Aliases))
	for canonical, aliases := range b.Aliases {
		table[canonical] = append([]string(nil), aliases...)
	}
	return table
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	// Enabled records every successful run
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config represents ethogram configuration options
type Config struct {
	// InputDir is the directory scanned for observation sheets
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the two result tables
	OutputDir string `yaml:"output_dir"`

	// CumulativeFile is the file name of the per-observation table
	CumulativeFile string `yaml:"cumulative_file"`

	// AverageFile is the file name of the per-treatment summary table
	AverageFile string `yaml:"average_file"`

	// Format is the export format (xlsx, csv, json, markdown, html)
	Format string `yaml:"format"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// LargeFileRows flags files with more rows than this (0 = never)
	LargeFileRows int `yaml:"large_file_rows"`

	// TreatmentMode selects how treatment conditions are assigned to files
	TreatmentMode string `yaml:"treatment_mode"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`

	// Behaviors contains the alias table and target categories
	Behaviors BehaviorsConfig `yaml:"behaviors"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	aliases := make(map[string]AliasList)
	for canonical, list := range behavior.DefaultAliases() {
		aliases[canonical] = AliasList(list)
	}

	return &Config{
		InputDir:       "./InputSheets",
		OutputDir:      "OutputSheets",
		CumulativeFile: "all_grouped_data.xlsx",
		AverageFile:    "mean_data.xlsx",
		Format:         "xlsx",
		LogLevel:       "info",
		LogDir:         ".ethogram/logs",
		LargeFileRows:  behavior.DefaultLargeFileRows,
		TreatmentMode:  TreatmentSequence,
		History: HistoryConfig{
			Enabled: false,
			DBPath:  ".ethogram/history.db",
		},
		Behaviors: BehaviorsConfig{
			Targets: behavior.DefaultTargets(),
			Aliases: aliases,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.InputDir != "" {
		cfg.InputDir = fileCfg.InputDir
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.CumulativeFile != "" {
		cfg.CumulativeFile = fileCfg.CumulativeFile
	}
	if fileCfg.AverageFile != "" {
		cfg.AverageFile = fileCfg.AverageFile
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.TreatmentMode != "" {
		cfg.TreatmentMode = fileCfg.TreatmentMode
	}

	// Sections whose zero values are meaningful are merged by key presence
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["large_file_rows"]; exists {
			cfg.LargeFileRows = fileCfg.LargeFileRows
		}

		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})
			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}

		// A behaviors section replaces the built-in vocabulary key by key
		if behaviorsSection, exists := rawMap["behaviors"]; exists && behaviorsSection != nil {
			behaviorsMap, _ := behaviorsSection.(map[string]interface{})
			if _, exists := behaviorsMap["targets"]; exists {
				cfg.Behaviors.Targets = fileCfg.Behaviors.Targets
			}
			if _, exists := behaviorsMap["aliases"]; exists {
				cfg.Behaviors.Aliases = fileCfg.Behaviors.Aliases
				if cfg.Behaviors.Aliases == nil {
					cfg.Behaviors.Aliases = map[string]AliasList{}
				}
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .ethogram/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".ethogram", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(inputDir, outputDir, format, logLevel *string, history *bool) {
	if inputDir != nil {
		c.InputDir = *inputDir
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if format != nil {
		c.Format = *format
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if history != nil {
		c.History.Enabled = *history
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := export.NewExporter(c.Format); err != nil {
		return fmt.Errorf("invalid format %q, must be one of: xlsx, csv, json, markdown (or md), html", c.Format)
	}

	if c.TreatmentMode != TreatmentSequence && c.TreatmentMode != TreatmentFilename {
		return fmt.Errorf("invalid treatment_mode %q, must be one of: %s, %s", c.TreatmentMode, TreatmentSequence, TreatmentFilename)
	}

	if c.InputDir == "" {
		return fmt.Errorf("input_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.CumulativeFile == "" || c.AverageFile == "" {
		return fmt.Errorf("cumulative_file and average_file cannot be empty")
	}
	if c.CumulativeFile == c.AverageFile {
		return fmt.Errorf("cumulative_file and average_file must differ, both are %q", c.CumulativeFile)
	}
	// The export format replaces the extension, so compare the written paths
	cumulativePath := export.OutputPath(c.OutputDir, c.CumulativeFile, c.Format)
	if averagePath := export.OutputPath(c.OutputDir, c.AverageFile, c.Format); cumulativePath == averagePath {
		return fmt.Errorf("cumulative_file %q and average_file %q must differ, both are written to %s", c.CumulativeFile, c.AverageFile, cumulativePath)
	}

	if c.LargeFileRows < 0 {
		return fmt.Errorf("large_file_rows must be >= 0, got %d", c.LargeFileRows)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	// Alias ambiguity is reported by the normalizer itself
	if _, err := behavior.NewNormalizer(c.Behaviors.AliasTable()); err != nil {
		return fmt.Errorf("invalid behaviors.aliases: %w", err)
	}
	for i, target := range c.Behaviors.Targets {
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("behaviors.targets[%d] cannot be empty", i)
		}
	}

	return nil
}
