// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the switchboard popup.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - headings and the popup title
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - binding keys
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - active switches and options
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - recoverable error notices
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - the resolved argument line
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - inactive entries, help footer
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// Overlay - borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// SHARED STYLES
// =============================================================================

// Title is the popup title style.
var Title = lipgloss.NewStyle().Foreground(Purple).Bold(true)

// Heading is the per-kind section heading style.
var Heading = lipgloss.NewStyle().Foreground(Purple)

// Key is the binding key style.
var Key = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

// Active marks entries currently contributing arguments.
var Active = lipgloss.NewStyle().Foreground(Emerald).Bold(true)

// Inactive marks entries currently off.
var Inactive = lipgloss.NewStyle().Foreground(TextMuted)

// Args is the resolved-argument footer style.
var Args = lipgloss.NewStyle().Foreground(Amber)

// Notice is the recoverable-error style.
var Notice = lipgloss.NewStyle().Foreground(Rose)

// Help is the help footer style.
var Help = lipgloss.NewStyle().Foreground(TextMuted)

// Frame draws the popup border.
var Frame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)
