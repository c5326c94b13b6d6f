// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and the persisted-defaults
// store for switchboard.
//
// # Key Types
//
//   - Config: TOML-backed configuration with env overrides and validation
//   - Store: hands out per-combo persisted-defaults cells
//
// # File Location
//
// Configuration is read from ~/.switchboard/config.toml (overridable with
// SWITCHBOARD_CONFIG) and written atomically with 0600 permissions. The
// policy mode is validated at load time: an unknown mode aborts startup
// before any combo is invoked.
package config
