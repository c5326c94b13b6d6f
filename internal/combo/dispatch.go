// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// INVOCATION POLICY
// =============================================================================

// Policy governs whether a prefix signal invokes the combo's default action
// directly or opens the interactive composer.
type Policy int

const (
	// PolicyUnset on a combo falls back to the process-wide policy.
	PolicyUnset Policy = iota

	// PolicyDefault dispatches the default action when the prefix signal is
	// present, and opens the composer otherwise.
	PolicyDefault

	// PolicyPopup opens the composer when the prefix signal is present, and
	// dispatches the default action otherwise.
	PolicyPopup

	// PolicyNone always opens the composer.
	PolicyNone
)

// String returns the policy's configuration name.
func (p Policy) String() string {
	switch p {
	case PolicyUnset:
		return "unset"
	case PolicyDefault:
		return "default"
	case PolicyPopup:
		return "popup"
	case PolicyNone:
		return "none"
	}
	return "invalid"
}

// ParsePolicy resolves a configured policy mode name. Any name outside the
// known set is the fatal configuration error of the dispatch layer.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "default":
		return PolicyDefault, nil
	case "popup":
		return PolicyPopup, nil
	case "none":
		return PolicyNone, nil
	}
	return 0, &InvalidPolicyError{Mode: name}
}

// =============================================================================
// DISPLAY COLLABORATOR
// =============================================================================

// Display renders an open session. It is scoped-acquired at session open and
// released on every exit path: quit, action dispatch, and errors from invoked
// commands.
type Display interface {
	Acquire(s *Session) error
	Refresh(s *Session)
	Release(s *Session)
}

// NopDisplay is the no-op display used when no renderer is attached.
type NopDisplay struct{}

func (NopDisplay) Acquire(*Session) error { return nil }
func (NopDisplay) Refresh(*Session)       {}
func (NopDisplay) Release(*Session)       {}

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates the invocation policy and drives combo sessions. All
// session mutations run to completion before the next input is processed;
// the engine is single-threaded by contract.
type Engine struct {
	registry *Registry
	display  Display
	policy   Policy
	report   Reporter
	current  *Session
}

// NewEngine creates an engine over the registry. The process-wide policy
// defaults to PolicyNone (always open the composer).
func NewEngine(registry *Registry, display Display) *Engine {
	if display == nil {
		display = NopDisplay{}
	}
	return &Engine{
		registry: registry,
		display:  display,
		policy:   PolicyNone,
		report:   registry.report,
	}
}

// SetPolicy sets the process-wide policy mode.
func (e *Engine) SetPolicy(p Policy) {
	e.policy = p
}

// SetReporter replaces the reporter used for recoverable failures.
func (e *Engine) SetReporter(report Reporter) {
	if report != nil {
		e.report = report
	}
}

// Current returns the active session, or nil.
func (e *Engine) Current() *Session {
	return e.current
}

// Invoke evaluates the invocation policy for a combo and either dispatches
// its default action directly or opens an interactive session. The prefix
// argument is the host's prefix signal.
func (e *Engine) Invoke(comboName string, prefix bool) error {
	c := e.registry.Get(comboName)
	if c == nil {
		return &UnknownComboError{Name: comboName}
	}

	policy := c.Policy
	if policy == PolicyUnset {
		policy = e.policy
	}

	direct := false
	switch policy {
	case PolicyDefault:
		direct = prefix
	case PolicyPopup:
		direct = !prefix
	case PolicyNone:
		// Always interactive.
	default:
		return &InvalidPolicyError{Mode: policy.String()}
	}

	if direct {
		if c.DefaultAction != nil {
			switches, options := convertFlagKinds(c)
			return c.DefaultAction(&CommandContext{
				Args:  Resolve(switches, options),
				Combo: c.Name,
			})
		}
		// Documented fallback, not a failure.
		e.report("switchboard: %s declares no default action, opening composer", c.Name)
	}

	return e.open(c)
}

// open converts the combo's declarations plus persisted defaults into a live
// session and acquires the display. An already-open session is suspended, not
// destroyed, and resumes when the new one closes.
func (e *Engine) open(c *Combo) error {
	s := &Session{
		ID:       uuid.NewString(),
		Combo:    c,
		engine:   e,
		previous: e.current,
		events:   make(map[Kind][]*Event, 4),
	}
	active := activeArgs(c)
	for _, kind := range []Kind{Switches, Options, Variables, Actions} {
		s.events[kind] = Convert(kind, c.Entries(kind), active)
	}

	e.current = s
	if err := e.display.Acquire(s); err != nil {
		e.current = s.previous
		return err
	}
	return nil
}

// activeArgs reads the combo's persisted-defaults cell. Nil means nothing was
// ever saved and authored defaults apply.
func activeArgs(c *Combo) []string {
	if c.Defaults == nil {
		return nil
	}
	args, ok := c.Defaults.Get()
	if !ok {
		return nil
	}
	if args == nil {
		args = []string{}
	}
	return args
}

// convertFlagKinds converts just the argument-bearing kinds, for direct
// dispatch without a session.
func convertFlagKinds(c *Combo) (switches, options []*Event) {
	active := activeArgs(c)
	return Convert(Switches, c.Entries(Switches), active),
		Convert(Options, c.Entries(Options), active)
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the live state of one open composer: the converted events for
// every kind plus the originating declaration. Exactly one session is active
// per engine; a suspended previous session is retained only to be resumed.
type Session struct {
	// ID identifies the session to invoked commands.
	ID string

	// Combo is the originating declaration.
	Combo *Combo

	engine   *Engine
	events   map[Kind][]*Event
	previous *Session
	closed   bool
}

// Events returns the live events for a kind, headings included, in
// declaration order.
func (s *Session) Events(kind Kind) []*Event {
	return s.events[kind]
}

// Args computes the resolved argument list from the current live state.
func (s *Session) Args() []string {
	return Resolve(s.events[Switches], s.events[Options])
}

// FilterArgs returns the resolved arguments filtered against patterns.
func (s *Session) FilterArgs(patterns []string, mode FilterMode) []string {
	return Filter(s.Args(), patterns, mode)
}

// Closed reports whether the session has been discarded.
func (s *Session) Closed() bool {
	return s.closed
}

// find returns the keyed live event for a kind, skipping headings.
func (s *Session) find(kind Kind, key string) *Event {
	for _, ev := range s.events[kind] {
		if !ev.IsHeading() && ev.Key == key {
			return ev
		}
	}
	return nil
}

// ToggleSwitch flips the Use flag of the switch bound to key. An unknown key
// is a recoverable user error and changes nothing.
func (s *Session) ToggleSwitch(key string) error {
	ev := s.find(Switches, key)
	if ev == nil {
		return &UnboundKeyError{Combo: s.Combo.Name, Key: key}
	}
	ev.Use = !ev.Use
	s.engine.display.Refresh(s)
	return nil
}

// ToggleOption clears an active option, or reads a value and activates an
// inactive one. Reader cancellation leaves the state unchanged; an empty
// returned value is a real value.
func (s *Session) ToggleOption(key string) error {
	ev := s.find(Options, key)
	if ev == nil {
		return &UnboundKeyError{Combo: s.Combo.Name, Key: key}
	}
	if ev.Use {
		ev.Use = false
		ev.Val = ""
		s.engine.display.Refresh(s)
		return nil
	}
	val, ok := ev.Reader(OptionPrompt(ev.Flag), ev.Val)
	if !ok {
		return nil
	}
	ev.Use = true
	ev.Val = val
	s.engine.display.Refresh(s)
	return nil
}

// ClearOption deactivates the option bound to key. Primitive used by display
// collaborators that stage their own value prompt.
func (s *Session) ClearOption(key string) error {
	ev := s.find(Options, key)
	if ev == nil {
		return &UnboundKeyError{Combo: s.Combo.Name, Key: key}
	}
	ev.Use = false
	ev.Val = ""
	s.engine.display.Refresh(s)
	return nil
}

// SetOption activates the option bound to key with an already-read value.
func (s *Session) SetOption(key, val string) error {
	ev := s.find(Options, key)
	if ev == nil {
		return &UnboundKeyError{Combo: s.Combo.Name, Key: key}
	}
	ev.Use = true
	ev.Val = val
	s.engine.display.Refresh(s)
	return nil
}

// OptionPrompt builds the value prompt for an option flag, appending the
// assignment marker unless the flag already ends in one.
func OptionPrompt(flag string) string {
	if strings.HasSuffix(flag, ValueMarker) {
		return flag
	}
	return flag + ValueMarker
}

// Invoke resolves key to an action or a variable-with-command and calls it
// with the resolved argument list as ambient context.
//
// Actions close the session before the call; variables keep it open and
// refresh the display afterward. When an action and a variable share a key,
// the variable is dispatched as the action if it carries no displayable flag;
// otherwise the action wins.
func (s *Session) Invoke(key string) error {
	action := s.find(Actions, key)
	variable := s.find(Variables, key)
	if variable != nil && variable.Command == nil {
		variable = nil
	}

	var target *Event
	asAction := false
	switch {
	case action != nil && variable != nil:
		if variable.Flag == "" {
			target, asAction = variable, true
		} else {
			target, asAction = action, true
		}
	case action != nil:
		target, asAction = action, true
	case variable != nil:
		target, asAction = variable, false
	default:
		return &UnboundKeyError{Combo: s.Combo.Name, Key: key}
	}

	ctx := &CommandContext{
		Args:       s.Args(),
		Combo:      s.Combo.Name,
		SessionID:  s.ID,
		ViaSession: true,
	}

	if asAction {
		s.close()
		return target.Command(ctx)
	}

	err := target.Command(ctx)
	if err != nil {
		s.engine.report("switchboard: %s: %v", s.Combo.Name, err)
	}
	s.engine.display.Refresh(s)
	return nil
}

// Quit discards the session, releases the display, and resumes a suspended
// previous session if one exists. Always available and always safe.
func (s *Session) Quit() {
	s.close()
}

// SetDefaults writes the resolved argument list into the combo's
// persisted-defaults cell, durably when persist is set. The session closes
// unless keepOpen is given. A combo without a cell has nothing to set.
func (s *Session) SetDefaults(persist, keepOpen bool) error {
	cell := s.Combo.Defaults
	if cell == nil {
		return &NothingToSetError{Combo: s.Combo.Name}
	}
	if err := cell.Set(s.Args(), persist); err != nil {
		return err
	}
	if !keepOpen {
		s.close()
	}
	return nil
}

// close is the single teardown path: it releases the display exactly once
// and restores a suspended previous session.
func (s *Session) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.engine.display.Release(s)

	if s.engine.current == s {
		s.engine.current = s.previous
		if s.previous != nil {
			if err := s.engine.display.Acquire(s.previous); err != nil {
				s.engine.report("switchboard: resuming %s: %v", s.previous.Combo.Name, err)
				s.engine.current = nil
			} else {
				s.engine.display.Refresh(s.previous)
			}
		}
	}
}
