// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"strings"
)

// =============================================================================
// EVENT KINDS
// =============================================================================

// Kind identifies which of a combo's four binding lists an entry lives in.
type Kind int

const (
	Switches Kind = iota // boolean flags, no value
	Options              // flags carrying a value set via a reader
	Variables            // entries that mutate external state via a command
	Actions              // plain invokable commands
)

// String returns the canonical (plural) kind name.
func (k Kind) String() string {
	switch k {
	case Switches:
		return "switches"
	case Options:
		return "options"
	case Variables:
		return "variables"
	case Actions:
		return "actions"
	}
	return "unknown"
}

// KindFromString folds a kind name (singular or plural) to its canonical Kind.
// Canonicalization happens before any table lookup or mutation; a name outside
// the known set is a structural configuration error.
func KindFromString(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "switch", "switches":
		return Switches, nil
	case "option", "options":
		return Options, nil
	case "variable", "variables":
		return Variables, nil
	case "action", "actions":
		return Actions, nil
	}
	return 0, &InvalidKindError{Name: name}
}

// =============================================================================
// DECLARATIONS
// =============================================================================

// ValueReader obtains a value for an option. It is invoked synchronously with
// a prompt and the option's previous value; ok=false means the user cancelled
// and the option's state must be left unchanged. An empty string with ok=true
// is a real value.
type ValueReader func(prompt, previous string) (value string, ok bool)

// CommandContext is the request-scoped context made available to an invoked
// command. Commands invoked directly (policy dispatch, no session) see
// ViaSession=false and should fall back to their own stored defaults.
type CommandContext struct {
	// Args is the resolved argument list at the moment of invocation.
	Args []string

	// Combo is the name of the combo that triggered the call.
	Combo string

	// SessionID identifies the originating session ("" when dispatched
	// directly without one).
	SessionID string

	// ViaSession is true when the command was invoked from an open composer
	// session rather than by direct policy dispatch.
	ViaSession bool
}

// CommandFunc is an invokable capability bound to an action or variable.
type CommandFunc func(ctx *CommandContext) error

// SwitchDef declares a boolean flag.
type SwitchDef struct {
	// Description is the human-readable label shown next to the key.
	Description string

	// Flag is the argument string the switch contributes (e.g. "-f").
	Flag string

	// EnabledByDefault turns the switch on when no saved defaults exist.
	EnabledByDefault bool

	// Handler is retained for help lookup only, and only for flags carrying
	// the extension marker prefix.
	Handler func()
}

// OptionDef declares a valued flag.
type OptionDef struct {
	// Description is the human-readable label shown next to the key.
	Description string

	// Flag is the prefix the option contributes (e.g. "--gpg-sign=").
	Flag string

	// Reader obtains the option's value. Nil falls back to the package-level
	// line reader.
	Reader ValueReader

	// Default is the authored default value, honored only when HasDefault is
	// set (an empty default is a real value).
	Default    string
	HasDefault bool
}

// VariableDef declares an entry whose command mutates external state.
type VariableDef struct {
	// Description is the human-readable label shown next to the key.
	Description string

	// Command is invoked with the session kept open.
	Command CommandFunc

	// Formatter renders the variable's current state for display.
	Formatter func() string

	// Flag is the displayable flag, if any. A variable without one is treated
	// as the action when an action shares its key.
	Flag string
}

// ActionDef declares a plain invokable command.
type ActionDef struct {
	// Description is the human-readable label shown next to the key.
	Description string

	// Command is invoked with the session closed first.
	Command CommandFunc
}

// Definition is the closed set of declarable entry payloads.
type Definition interface {
	defKind() Kind
}

func (*SwitchDef) defKind() Kind   { return Switches }
func (*OptionDef) defKind() Kind   { return Options }
func (*VariableDef) defKind() Kind { return Variables }
func (*ActionDef) defKind() Kind   { return Actions }

// =============================================================================
// LIVE EVENTS
// =============================================================================

// ExtensionMarker is the reserved two-character prefix that marks a switch
// flag as an extension; only such switches keep their handler after
// conversion (for help display).
const ExtensionMarker = "++"

// Event is the runtime, mutable instance of a declared entry within one
// session. Invariants (Use=false implies Val irrelevant; Use=true means the
// flag appears in the resolved argument list) are enforced by the converter
// and the dispatch engine, not here.
type Event struct {
	// Key is the binding key ("" for heading pass-throughs).
	Key string

	// Kind the event was converted from.
	Kind Kind

	// Description is carried from the declaration.
	Description string

	// Flag is the argument string / prefix (switches and options only).
	Flag string

	// Use marks the entry as currently "on".
	Use bool

	// Val is the current value (options only; meaningful when Use is true).
	Val string

	// Handler is the help-lookup handler retained for extension switches.
	Handler func()

	// Command is the invokable capability (actions and variables).
	Command CommandFunc

	// Formatter renders a variable's current state.
	Formatter func() string

	// Reader obtains an option's value.
	Reader ValueReader

	// Heading is set on pass-through grouping markers; such events carry no
	// key and never contribute arguments.
	Heading string
}

// IsHeading reports whether the event is a pass-through grouping marker.
func (e *Event) IsHeading() bool {
	return e.Heading != ""
}
