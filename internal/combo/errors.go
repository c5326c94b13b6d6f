// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import "fmt"

// Two error classes cross the dispatch boundary: unbound keys (and other
// user-input mistakes) are recoverable and surface as messages; structural
// misconfiguration (invalid policy mode, malformed kind name) is fatal and
// halts invocation before any session opens.

// UnboundKeyError reports a toggle or invoke on a key with no declaration.
// Recoverable: the session state is unchanged.
type UnboundKeyError struct {
	Combo string
	Key   string
}

func (e *UnboundKeyError) Error() string {
	return fmt.Sprintf("%s: no binding for key %q", e.Combo, e.Key)
}

// InvalidKindError reports a kind name outside the known set. Fatal.
type InvalidKindError struct {
	Name string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid event kind %q, must be one of: switches, options, variables, actions", e.Name)
}

// InvalidPolicyError reports an unresolvable invocation policy mode. Fatal:
// it aborts the invocation before a session is opened.
type InvalidPolicyError struct {
	Mode string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid policy mode %q, must be one of: default, popup, none", e.Mode)
}

// NothingToSetError reports a set-defaults request against a combo with no
// persisted-defaults cell configured. Recoverable: no state changes.
type NothingToSetError struct {
	Combo string
}

func (e *NothingToSetError) Error() string {
	return fmt.Sprintf("%s: nothing to set, combo has no defaults cell", e.Combo)
}

// UnknownComboError reports an invocation of an undeclared combo.
type UnknownComboError struct {
	Name string
}

func (e *UnknownComboError) Error() string {
	return fmt.Sprintf("unknown combo %q", e.Name)
}

// DefinitionMismatchError reports a bind whose definition payload does not
// match the requested kind.
type DefinitionMismatchError struct {
	Kind Kind
	Got  Kind
}

func (e *DefinitionMismatchError) Error() string {
	return fmt.Sprintf("definition is a %s entry, bound as %s", e.Got, e.Kind)
}
