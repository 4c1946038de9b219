// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/internal/inventory"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the certwatch configuration structure.
// It contains default settings applied when the corresponding CLI flags
// are not given. Supported file extensions: .json, .yaml, .yml.
//
// No environment variables are consulted; configuration comes only from
// the file named by the --config flag, with built-in defaults otherwise.
type Config struct {
	// Defaults: Default settings for certificate tracking
	Defaults struct {
		// Storage: Path to the certificate storage file
		Storage string `json:"storage" yaml:"storage"`
		// WarnDays: Expiring-soon threshold for listings and status
		WarnDays int `json:"warnDays" yaml:"warnDays"`
		// UrgentDays: Threshold below which expiry is urgent
		UrgentDays int `json:"urgentDays" yaml:"urgentDays"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on
// file extension, case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads configuration from a JSON or YAML file, or applies
// built-in defaults when configPath is empty.
//
// Unlike storage corruption, an unreadable config file that was explicitly
// requested is a hard error: silently ignoring it would run the command
// against the wrong storage path.
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Defaults.Storage = inventory.DefaultStoragePath
	config.Defaults.WarnDays = certs.DefaultExpiringSoonDays
	config.Defaults.UrgentDays = certs.UrgentExpiringSoonDays

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
		return nil, err
	}

	// A config file may set only some defaults; restore the rest.
	if config.Defaults.Storage == "" {
		config.Defaults.Storage = inventory.DefaultStoragePath
	}
	if config.Defaults.WarnDays <= 0 {
		config.Defaults.WarnDays = certs.DefaultExpiringSoonDays
	}
	if config.Defaults.UrgentDays <= 0 {
		config.Defaults.UrgentDays = certs.UrgentExpiringSoonDays
	}

	return config, nil
}
