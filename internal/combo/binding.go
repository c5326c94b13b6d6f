// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"fmt"
	"os"
)

// =============================================================================
// COMBO DECLARATION
// =============================================================================

// Entry is one declared binding in a combo's per-kind list. Either Def is set
// (a keyed binding) or Heading is set (an opaque grouping marker passed
// through to the display collaborator untouched).
type Entry struct {
	Key     string
	Def     Definition
	Heading string
}

// DefaultsCell is the opaque external slot holding a combo's last-saved
// argument list. The engine reads it only at session open and writes it only
// on explicit set/save operations.
type DefaultsCell interface {
	// Get returns the saved argument list. ok=false means nothing was ever
	// saved, in which case authored defaults apply at conversion time.
	Get() (args []string, ok bool)

	// Set stores the argument list, durably when persist is set.
	Set(args []string, persist bool) error
}

// Combo is a named, declared group of switches, options, variables and
// actions, plus an optional default action and invocation policy override.
type Combo struct {
	// Name identifies the combo in the registry.
	Name string

	// Description is shown by listings and the popup title.
	Description string

	// DefaultAction, when declared, can be dispatched directly by the
	// invocation policy without opening a session.
	DefaultAction CommandFunc

	// Policy overrides the process-wide policy mode when not PolicyUnset.
	Policy Policy

	// Defaults is the persisted-defaults cell, if the combo has one.
	Defaults DefaultsCell

	lists map[Kind][]Entry
}

// NewCombo creates an empty combo declaration.
func NewCombo(name, description string) *Combo {
	return &Combo{
		Name:        name,
		Description: description,
		lists:       make(map[Kind][]Entry),
	}
}

// Entries returns the ordered entry list for a kind. Order is significant:
// display order equals activation precedence, and it is mutated only through
// Bind/Rebind/Unbind.
func (c *Combo) Entries(kind Kind) []Entry {
	return c.lists[kind]
}

// AddHeading appends an opaque grouping marker to a kind's list.
func (c *Combo) AddHeading(kind Kind, heading string) {
	c.lists[kind] = append(c.lists[kind], Entry{Heading: heading})
}

// find returns the index of the keyed entry, or -1. Headings never match.
func (c *Combo) find(kind Kind, key string) int {
	for i, e := range c.lists[kind] {
		if e.Heading == "" && e.Key == key {
			return i
		}
	}
	return -1
}

// =============================================================================
// BINDING OPERATIONS
// =============================================================================

// BindOption adjusts placement of a Bind call.
type BindOption func(*bindOpts)

type bindOpts struct {
	anchor    string
	hasAnchor bool
	prepend   bool
}

// WithAnchor places the new entry relative to the entry keyed anchor. If the
// anchor is not found the entry drops to the end of the list; this is a
// documented fallback, not an error.
func WithAnchor(key string) BindOption {
	return func(o *bindOpts) {
		o.anchor = key
		o.hasAnchor = true
	}
}

// Prepend inserts before the anchor (or, without one, first in the list).
func Prepend() BindOption {
	return func(o *bindOpts) {
		o.prepend = true
	}
}

// Bind adds or repositions a binding on the combo.
//
// Without an anchor, an existing key is replaced in place and a new key is
// appended (or inserted first under Prepend). With an anchor, any existing
// entry for the key is removed and the new entry lands immediately before
// (Prepend) or after the anchor, falling back to the end when the anchor is
// missing.
func (c *Combo) Bind(kindName, key string, def Definition, opts ...BindOption) error {
	kind, err := KindFromString(kindName)
	if err != nil {
		return err
	}
	if got := def.defKind(); got != kind {
		return &DefinitionMismatchError{Kind: kind, Got: got}
	}

	var o bindOpts
	for _, opt := range opts {
		opt(&o)
	}

	list := c.lists[kind]
	existing := c.find(kind, key)

	if !o.hasAnchor {
		if existing >= 0 {
			// Replace in place, preserving position.
			list[existing].Def = def
			return nil
		}
		entry := Entry{Key: key, Def: def}
		if o.prepend {
			c.lists[kind] = append([]Entry{entry}, list...)
		} else {
			c.lists[kind] = append(list, entry)
		}
		return nil
	}

	if existing >= 0 {
		list = append(list[:existing], list[existing+1:]...)
	}

	entry := Entry{Key: key, Def: def}
	at := -1
	for i, e := range list {
		if e.Heading == "" && e.Key == o.anchor {
			at = i
			break
		}
	}
	switch {
	case at < 0:
		// Missing anchor drops the entry to the end.
		list = append(list, entry)
	case o.prepend:
		list = append(list[:at], append([]Entry{entry}, list[at:]...)...)
	default:
		list = append(list[:at+1], append([]Entry{entry}, list[at+1:]...)...)
	}
	c.lists[kind] = list
	return nil
}

// Rebind renames an existing bound key in place.
func (c *Combo) Rebind(kindName, fromKey, toKey string) error {
	kind, err := KindFromString(kindName)
	if err != nil {
		return err
	}
	i := c.find(kind, fromKey)
	if i < 0 {
		return &UnboundKeyError{Combo: c.Name, Key: fromKey}
	}
	c.lists[kind][i].Key = toKey
	return nil
}

// Unbind removes the entry for key if present; a missing key is a no-op.
func (c *Combo) Unbind(kindName, key string) error {
	kind, err := KindFromString(kindName)
	if err != nil {
		return err
	}
	i := c.find(kind, key)
	if i < 0 {
		return nil
	}
	c.lists[kind] = append(c.lists[kind][:i], c.lists[kind][i+1:]...)
	return nil
}

// =============================================================================
// REGISTRY AND DEFERRED BINDING
// =============================================================================

// Reporter surfaces non-fatal failures to the user.
type Reporter func(format string, args ...any)

func stderrReporter(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

type pendingBind struct {
	kindName string
	key      string
	def      Definition
	opts     []BindOption
}

// Registry holds all declared combos plus bind calls queued against combos
// that have not been declared yet (forward references at definition time).
type Registry struct {
	combos  map[string]*Combo
	order   []string
	pending map[string][]pendingBind
	report  Reporter
}

// NewRegistry creates an empty combo registry.
func NewRegistry() *Registry {
	return &Registry{
		combos:  make(map[string]*Combo),
		pending: make(map[string][]pendingBind),
		report:  stderrReporter,
	}
}

// SetReporter replaces the reporter used for non-fatal failures.
func (r *Registry) SetReporter(report Reporter) {
	if report != nil {
		r.report = report
	}
}

// Declare registers a combo and replays any bind calls queued against its
// name, in original call order. A replay failure for one queued call is
// reported without aborting the remaining calls.
func (r *Registry) Declare(c *Combo) {
	if _, seen := r.combos[c.Name]; !seen {
		r.order = append(r.order, c.Name)
	}
	r.combos[c.Name] = c

	queued := r.pending[c.Name]
	delete(r.pending, c.Name)
	for _, p := range queued {
		if err := c.Bind(p.kindName, p.key, p.def, p.opts...); err != nil {
			r.report("switchboard: deferred bind %s.%s %q: %v", c.Name, p.kindName, p.key, err)
		}
	}
}

// Get returns a declared combo, or nil.
func (r *Registry) Get(name string) *Combo {
	return r.combos[name]
}

// All returns declared combos in declaration order.
func (r *Registry) All() []*Combo {
	out := make([]*Combo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.combos[name])
	}
	return out
}

// Bind edits a combo's bindings by name. When the combo is not declared yet
// the call is queued and replayed on Declare.
func (r *Registry) Bind(comboName, kindName, key string, def Definition, opts ...BindOption) error {
	if c, ok := r.combos[comboName]; ok {
		return c.Bind(kindName, key, def, opts...)
	}
	r.pending[comboName] = append(r.pending[comboName], pendingBind{
		kindName: kindName,
		key:      key,
		def:      def,
		opts:     opts,
	})
	return nil
}

// Rebind renames a bound key on a declared combo. Failures are reported and
// non-fatal.
func (r *Registry) Rebind(comboName, kindName, fromKey, toKey string) {
	c, ok := r.combos[comboName]
	if !ok {
		r.report("switchboard: rebind %s.%s: %v", comboName, kindName, &UnknownComboError{Name: comboName})
		return
	}
	if err := c.Rebind(kindName, fromKey, toKey); err != nil {
		r.report("switchboard: rebind %s.%s %q: %v", comboName, kindName, fromKey, err)
	}
}

// Unbind removes a binding from a declared combo.
func (r *Registry) Unbind(comboName, kindName, key string) error {
	c, ok := r.combos[comboName]
	if !ok {
		return &UnknownComboError{Name: comboName}
	}
	return c.Unbind(kindName, key)
}

// PendingCount returns the number of bind calls queued for an undeclared
// combo. Exposed for diagnostics and tests.
func (r *Registry) PendingCount(comboName string) int {
	return len(r.pending[comboName])
}
