// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the relay command-line interface.
//
// Running relay with no subcommand starts the full-screen TUI. The
// subcommands cover scripting use: ask streams a one-shot reply to
// stdout, sessions lists and deletes saved conversations, and doctor
// probes service connectivity.
package cli
