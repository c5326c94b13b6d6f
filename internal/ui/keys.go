// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the bubbletea display collaborator for combo sessions.
//
// This file defines the popup's own keyboard bindings. Combo binding keys are
// routed first; the bindings here apply only when a pressed key is not bound
// in the open combo.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the popup's own keyboard bindings.
type KeyMap struct {
	Quit   key.Binding
	Set    key.Binding
	Save   key.Binding
	Filter key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default popup key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+g", "q"),
			key.WithHelp("q/Esc", "quit"),
		),
		Set: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "set defaults"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save defaults"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the footer help entries in display order.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Set, k.Save, k.Filter, k.Help}
}
