// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for relay.
//
// Configuration is TOML at ~/.relay/config.toml, with built-in defaults
// and environment variable overrides (RELAY_BASE_URL, RELAY_MODEL,
// RELAY_LOG_LEVEL). A file watcher re-loads the configuration on change so
// the running TUI can pick up edits without a restart.
package config
