// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/morganforge/switchboard/internal/combo"
	"github.com/morganforge/switchboard/internal/ui/styles"
)

// =============================================================================
// POPUP MODEL
// =============================================================================

// inputMode tracks what the single text input is currently collecting.
type inputMode int

const (
	modeBrowse inputMode = iota
	modePrompt           // reading an option value
	modeFilter           // collecting the fuzzy filter string
)

// Popup renders one combo session and routes key presses into it. Combo
// binding keys always win over the popup's own bindings, so a combo may
// shadow the quit key with an action of its own.
type Popup struct {
	session *combo.Session
	keys    KeyMap

	input     textinput.Model
	mode      inputMode
	promptKey string

	filter   string
	showHelp bool
	notice   string
	width    int

	// err is the terminal error of an invoked command, surfaced to the
	// caller after the program exits.
	err error
}

// NewPopup creates the popup for an open session.
func NewPopup(session *combo.Session) *Popup {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)

	return &Popup{
		session: session,
		keys:    DefaultKeyMap(),
		input:   ti,
		width:   80,
	}
}

// Err returns the error of the command dispatched from the popup, if any.
func (p *Popup) Err() error {
	return p.err
}

// Init implements tea.Model.
func (p *Popup) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Popup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil
	case tea.KeyMsg:
		switch p.mode {
		case modePrompt:
			return p.updatePrompt(msg)
		case modeFilter:
			return p.updateFilter(msg)
		}
		return p.updateBrowse(msg)
	}
	return p, nil
}

// =============================================================================
// KEY ROUTING
// =============================================================================

// updateBrowse routes a key press: switch toggles, then option toggles, then
// action/variable invocation, then the popup's own bindings. Unbound keys
// surface as a notice without changing session state.
func (p *Popup) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p.notice = ""
	pressed := msg.String()

	if ev := findKey(p.session, combo.Switches, pressed); ev != nil {
		if err := p.session.ToggleSwitch(pressed); err != nil {
			p.notice = err.Error()
		}
		return p, nil
	}

	if ev := findKey(p.session, combo.Options, pressed); ev != nil {
		if ev.Use {
			if err := p.session.ClearOption(pressed); err != nil {
				p.notice = err.Error()
			}
			return p, nil
		}
		// Stage the value prompt; the session is updated on enter.
		p.mode = modePrompt
		p.promptKey = pressed
		p.input.Prompt = combo.OptionPrompt(ev.Flag)
		p.input.SetValue(ev.Val)
		p.input.Focus()
		return p, textinput.Blink
	}

	if findKey(p.session, combo.Actions, pressed) != nil || boundVariable(p.session, pressed) {
		err := p.session.Invoke(pressed)
		if err != nil {
			var unbound *combo.UnboundKeyError
			if errors.As(err, &unbound) {
				p.notice = err.Error()
				return p, nil
			}
			p.err = err
		}
		if p.session.Closed() {
			return p, tea.Quit
		}
		return p, nil
	}

	switch {
	case key.Matches(msg, p.keys.Quit):
		p.session.Quit()
		return p, tea.Quit
	case key.Matches(msg, p.keys.Set):
		return p.setDefaults(false)
	case key.Matches(msg, p.keys.Save):
		return p.setDefaults(true)
	case key.Matches(msg, p.keys.Filter):
		p.mode = modeFilter
		p.input.Prompt = "/"
		p.input.SetValue(p.filter)
		p.input.Focus()
		return p, textinput.Blink
	case key.Matches(msg, p.keys.Help):
		p.showHelp = !p.showHelp
		return p, nil
	}

	p.notice = fmt.Sprintf("%s: no binding for key %q", p.session.Combo.Name, pressed)
	return p, nil
}

func (p *Popup) setDefaults(persist bool) (tea.Model, tea.Cmd) {
	if err := p.session.SetDefaults(persist, false); err != nil {
		p.notice = err.Error()
		return p, nil
	}
	if p.session.Closed() {
		return p, tea.Quit
	}
	return p, nil
}

func (p *Popup) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := p.session.SetOption(p.promptKey, p.input.Value()); err != nil {
			p.notice = err.Error()
		}
		p.leaveInput()
		return p, nil
	case "esc", "ctrl+g":
		// Cancellation leaves the option untouched.
		p.leaveInput()
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Popup) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		p.filter = p.input.Value()
		p.leaveInput()
		return p, nil
	case "esc", "ctrl+g":
		p.filter = ""
		p.leaveInput()
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Popup) leaveInput() {
	p.mode = modeBrowse
	p.promptKey = ""
	p.input.Blur()
	p.input.SetValue("")
}

// findKey returns the non-heading live event bound to key for a kind.
func findKey(s *combo.Session, kind combo.Kind, key string) *combo.Event {
	for _, ev := range s.Events(kind) {
		if !ev.IsHeading() && ev.Key == key {
			return ev
		}
	}
	return nil
}

// boundVariable reports a variable with a command bound to key.
func boundVariable(s *combo.Session, key string) bool {
	ev := findKey(s, combo.Variables, key)
	return ev != nil && ev.Command != nil
}

// =============================================================================
// VIEW
// =============================================================================

var sectionLabels = map[combo.Kind]string{
	combo.Switches:  "Switches",
	combo.Options:   "Options",
	combo.Variables: "Variables",
	combo.Actions:   "Actions",
}

// View implements tea.Model.
func (p *Popup) View() string {
	if p.session.Closed() {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(p.session.Combo.Name))
	if p.session.Combo.Description != "" {
		b.WriteString("  " + styles.Inactive.Render(p.session.Combo.Description))
	}
	b.WriteString("\n")

	for _, kind := range []combo.Kind{combo.Switches, combo.Options, combo.Variables, combo.Actions} {
		rows := p.visibleRows(kind)
		if len(rows) == 0 {
			continue
		}
		b.WriteString("\n" + styles.Heading.Render(sectionLabels[kind]) + "\n")
		for _, row := range rows {
			b.WriteString(" " + row + "\n")
		}
	}

	b.WriteString("\n" + styles.Args.Render("args: "+strings.Join(p.session.Args(), " ")) + "\n")

	if p.mode != modeBrowse {
		b.WriteString(p.input.View() + "\n")
	}
	if p.notice != "" {
		b.WriteString(styles.Notice.Render(p.notice) + "\n")
	}
	b.WriteString(p.helpView())

	return styles.Frame.Render(b.String())
}

// visibleRows renders the events of one kind, applying the fuzzy filter.
func (p *Popup) visibleRows(kind combo.Kind) []string {
	events := p.session.Events(kind)
	var rows []string
	var targets []string
	var rendered []*combo.Event

	for _, ev := range events {
		if ev.IsHeading() {
			if p.filter == "" {
				rows = append(rows, styles.Heading.Render(ev.Heading))
			}
			continue
		}
		if p.filter != "" {
			rendered = append(rendered, ev)
			targets = append(targets, ev.Key+" "+ev.Description+" "+ev.Flag)
			continue
		}
		rows = append(rows, p.renderEvent(ev))
	}

	if p.filter != "" {
		for _, m := range fuzzy.Find(p.filter, targets) {
			rows = append(rows, p.renderEvent(rendered[m.Index]))
		}
	}
	return rows
}

// renderEvent paints one binding row: key, padded description, then the
// flag/value state.
func (p *Popup) renderEvent(ev *combo.Event) string {
	keyCol := styles.Key.Render(padRight(ev.Key, 3))
	desc := padRight(ev.Description, 28)

	switch ev.Kind {
	case combo.Switches:
		state := "(" + ev.Flag + ")"
		if ev.Use {
			return keyCol + desc + styles.Active.Render(state)
		}
		return keyCol + desc + styles.Inactive.Render(state)
	case combo.Options:
		state := "(" + ev.Flag + ev.Val + ")"
		if ev.Use {
			return keyCol + desc + styles.Active.Render(state)
		}
		return keyCol + desc + styles.Inactive.Render(state)
	case combo.Variables:
		state := ""
		if ev.Formatter != nil {
			state = ev.Formatter()
		}
		return keyCol + desc + styles.Inactive.Render(state)
	default:
		return keyCol + desc
	}
}

// helpView renders either the short hint or the full footer.
func (p *Popup) helpView() string {
	if !p.showHelp {
		return styles.Help.Render("? help")
	}
	var parts []string
	for _, b := range p.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.Help.Render(strings.Join(parts, " • "))
}

// padRight pads s to width terminal cells, runewidth-aware.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-w)
}
