// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	cenv "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/eve-sso/env"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "EVE_SSO_"

	// relativePath is the config file location under the XDG config dirs.
	relativePath = "eve-sso/config.yaml"
)

// searchConfigPath finds an existing config file, can be replaced in tests
var searchConfigPath = func() (string, error) {
	return xdg.SearchConfigFile(relativePath)
}

// DefaultPath returns where a new config file should be written, creating
// its parent directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(relativePath)
}

// Load builds a Config from the defaults, the YAML file at path and the
// EVE_SSO_* environment, in that order. An empty path searches the XDG config
// directories; a missing file there is not an error. The result is not validated.
func Load(path string, reader env.Reader) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if found, err := searchConfigPath(); err == nil {
			path = found
		}
	}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
		switch {
		case err == nil:
			if err := Parse(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := ApplyEnv(&cfg, reader); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse validates data against the schema and decodes it over cfg. Fields
// absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := ValidateSchema(data); err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with EVE_SSO_* variables from reader.
func ApplyEnv(cfg *Config, reader env.Reader) error {
	if reader == nil {
		return nil
	}
	opts := cenv.Options{
		Environment: reader.Environ(),
		Prefix:      EnvPrefix,
	}
	if err := cenv.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
