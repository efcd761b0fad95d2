// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Policy PolicyConfig `toml:"policy"`
	Output OutputConfig `toml:"output"`
}

// PolicyConfig maps shift policy settings. Values are read once at startup
// and immutable for the run.
type PolicyConfig struct {
	ShiftStart     *string `toml:"shift-start"`
	ShiftEnd       *string `toml:"shift-end"`
	LateEntryLimit *string `toml:"late-entry-limit"`
	EarlyExitLimit *string `toml:"early-exit-limit"`
	TimezoneOffset *string `toml:"timezone-offset"`
}

// OutputConfig maps export path and format settings.
type OutputConfig struct {
	JSONPath   *string `toml:"json"`
	TablePath  *string `toml:"table"`
	ErrorsPath *string `toml:"errors"`
	Format     *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
