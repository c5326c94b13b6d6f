// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/switchboard/internal/combo"
	"github.com/morganforge/switchboard/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete switchboard configuration.
type Config struct {
	// Version of the config format.
	Version string `toml:"version"`

	// Policy is the process-wide invocation policy mode: "default", "popup"
	// or "none". Combos may override it individually.
	Policy string `toml:"policy"`

	// Combos holds per-combo saved defaults keyed by combo name.
	Combos map[string]ComboDefaults `toml:"combos"`
}

// ComboDefaults is the saved state of one combo's defaults cell.
type ComboDefaults struct {
	// Args is the last-saved argument list.
	Args []string `toml:"args"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Policy:  "none",
		Combos:  make(map[string]ComboDefaults),
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the switchboard configuration directory path. The
// SWITCHBOARD_CONFIG environment variable overrides it.
func Dir() (string, error) {
	if dir := os.Getenv("SWITCHBOARD_CONFIG"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".switchboard"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when none exists. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the TOML config file. The write is atomic
// and the file is created with 0600 permissions.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# switchboard configuration file\n")
	buf.WriteString("# Generated by switchboard - edit with care\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS, OVERRIDES, VALIDATION
// =============================================================================

// SetDefaults fills missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Policy == "" {
		c.Policy = defaults.Policy
	}
	if c.Combos == nil {
		c.Combos = make(map[string]ComboDefaults)
	}
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - SWITCHBOARD_POLICY: overrides the policy mode
//   - SWITCHBOARD_CONFIG: overrides the config directory (see Dir)
func (c *Config) ApplyEnvOverrides() {
	if policy := os.Getenv("SWITCHBOARD_POLICY"); policy != "" {
		c.Policy = policy
	}
}

// Validate validates the configuration. An unresolvable policy mode is the
// fatal misconfiguration of the dispatch layer, so it is caught here before
// any invocation runs.
func (c *Config) Validate() error {
	if _, err := combo.ParsePolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// PolicyMode returns the parsed process-wide policy.
func (c *Config) PolicyMode() (combo.Policy, error) {
	return combo.ParsePolicy(c.Policy)
}

// =============================================================================
// PERSISTED-DEFAULTS STORE
// =============================================================================

// Store hands out persisted-defaults cells backed by one loaded Config.
// Non-persistent writes mutate only the in-memory state; persistent writes
// also save the config file.
type Store struct {
	cfg *Config
}

// NewStore creates a store over a loaded configuration.
func NewStore(cfg *Config) *Store {
	if cfg.Combos == nil {
		cfg.Combos = make(map[string]ComboDefaults)
	}
	return &Store{cfg: cfg}
}

// Cell returns the defaults cell for a named combo.
func (s *Store) Cell(comboName string) combo.DefaultsCell {
	return &cell{store: s, combo: comboName}
}

type cell struct {
	store *Store
	combo string
}

// Get returns the saved argument list for the combo. ok=false means nothing
// was ever saved.
func (c *cell) Get() ([]string, bool) {
	saved, ok := c.store.cfg.Combos[c.combo]
	if !ok {
		return nil, false
	}
	return saved.Args, true
}

// Set stores the argument list, writing the config file when persist is set.
func (c *cell) Set(args []string, persist bool) error {
	c.store.cfg.Combos[c.combo] = ComboDefaults{Args: append([]string(nil), args...)}
	if !persist {
		return nil
	}
	return Save(c.store.cfg)
}

// =============================================================================
// GET/SET HELPERS
// =============================================================================

// Get retrieves a configuration value by key for the CLI config surface.
// Keys: "policy", "combos.<name>".
func (c *Config) Get(key string) (string, error) {
	switch {
	case key == "policy":
		return c.Policy, nil
	case strings.HasPrefix(key, "combos."):
		name := strings.TrimPrefix(key, "combos.")
		saved, ok := c.Combos[name]
		if !ok {
			return "", fmt.Errorf("no saved defaults for combo %q", name)
		}
		return strings.Join(saved.Args, " "), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set updates a configuration value by key.
func (c *Config) Set(key, value string) error {
	switch {
	case key == "policy":
		if _, err := combo.ParsePolicy(value); err != nil {
			return err
		}
		c.Policy = value
		return nil
	case strings.HasPrefix(key, "combos."):
		name := strings.TrimPrefix(key, "combos.")
		c.Combos[name] = ComboDefaults{Args: strings.Fields(value)}
		return nil
	}
	return fmt.Errorf("unknown config key %q", key)
}
