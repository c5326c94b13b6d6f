// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/morganforge/switchboard/internal/combo"
)

// =============================================================================
// TERMINAL DISPLAY
// =============================================================================

// Display is the terminal-backed combo.Display. It only tracks which session
// holds the screen; the actual drawing happens inside the bubbletea program
// that Run starts per session.
type Display struct {
	active *combo.Session
}

// NewDisplay creates a terminal display.
func NewDisplay() *Display {
	return &Display{}
}

// Acquire implements combo.Display. It refuses to take the screen when stdout
// is not a terminal, which turns composer fallbacks in pipelines into errors
// instead of garbled output.
func (d *Display) Acquire(s *combo.Session) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cannot open %s: stdout is not a terminal", s.Combo.Name)
	}
	d.active = s
	return nil
}

// Refresh implements combo.Display. The popup re-reads session state every
// frame, so there is nothing to push here.
func (d *Display) Refresh(*combo.Session) {}

// Release implements combo.Display.
func (d *Display) Release(s *combo.Session) {
	if d.active == s {
		d.active = nil
	}
}

// Active returns the session currently holding the screen, if any.
func (d *Display) Active() *combo.Session {
	return d.active
}

// =============================================================================
// RUN LOOP
// =============================================================================

// Run drives popups for the engine until no session remains open. Closing a
// nested session resumes its parent, which shows up here as Current going
// non-nil again after a program exits.
func Run(engine *combo.Engine) error {
	for session := engine.Current(); session != nil; session = engine.Current() {
		popup := NewPopup(session)
		if _, err := tea.NewProgram(popup).Run(); err != nil {
			session.Quit()
			return fmt.Errorf("popup for %s: %w", session.Combo.Name, err)
		}
		if err := popup.Err(); err != nil {
			return err
		}
		if engine.Current() == session {
			// The program exited without the session closing, eg on a
			// terminal-level interrupt. Do not spin on the same session.
			session.Quit()
		}
	}
	return nil
}
