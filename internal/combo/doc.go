// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package combo implements the command-combo engine: declared groups of
// switches, options, variables and actions from which a user interactively
// assembles an argument list and triggers a command.
//
// # Key Types
//
//   - Registry: declared combos plus deferred bind calls replayed on Declare
//   - Combo: one declaration with per-kind ordered binding lists
//   - Event: the live, mutable instance of a declared entry in a session
//   - Engine: invocation policy evaluation and session lifecycle
//   - Session: toggle/invoke/set-defaults state transitions
//
// # Flow
//
// Declarations plus persisted defaults convert into live events at session
// open; user toggles mutate the live events; Resolve flattens them back into
// the ordered argument list consumed by the invoked command:
//
//	reg := combo.NewRegistry()
//	reg.Declare(commit)
//	eng := combo.NewEngine(reg, display)
//	if err := eng.Invoke("commit", prefix); err != nil { ... }
//	sess := eng.Current()
//	sess.ToggleSwitch("a")
//	sess.Invoke("c") // command receives sess.Args()
//
// The display collaborator and the persisted-defaults cell are interfaces;
// the engine itself renders nothing and touches no storage beyond them.
package combo
