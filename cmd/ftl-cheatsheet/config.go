package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/hugomg/ftl-cheatsheet/pkg/cheatsheet"
)

// Config is the top-level configuration for the generator.
type Config struct {
	LogLevel string             `json:"log_level"`
	Page     *cheatsheet.Config `json:"page_config"`

	// ExtraRootEvents and ExtraRootGroups supplement the built-in
	// root set, which is useful for modded data directories.
	ExtraRootEvents []string `json:"extra_root_events"`
	ExtraRootGroups []string `json:"extra_root_groups"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		Page:            cheatsheet.DefaultConfig(),
		ExtraRootEvents: []string{},
		ExtraRootGroups: []string{},
	}
}

// LoadConfig reads the configuration from a JSON file at the given
// path. If the file doesn't exist, it creates one with default values
// so the operator has something to edit.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The run can still proceed with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
