// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// =============================================================================
// ARGUMENT CONVERTER
// =============================================================================

// Convert turns a combo's static entry list for one kind plus the currently
// active argument list into ordered live events.
//
// active carries the combo's saved defaults (or a restored prior state). A
// nil active list means nothing was ever saved, and authored defaults apply;
// a non-nil list - even an empty one - decides activation by membership
// alone.
//
// Heading entries pass through unchanged for the display collaborator.
func Convert(kind Kind, entries []Entry, active []string) []*Event {
	events := make([]*Event, 0, len(entries))
	for _, entry := range entries {
		if entry.Heading != "" {
			events = append(events, &Event{Kind: kind, Heading: entry.Heading})
			continue
		}
		switch def := entry.Def.(type) {
		case *SwitchDef:
			events = append(events, convertSwitch(entry.Key, def, active))
		case *OptionDef:
			events = append(events, convertOption(entry.Key, def, active))
		case *VariableDef:
			events = append(events, &Event{
				Key:         entry.Key,
				Kind:        Variables,
				Description: def.Description,
				Flag:        def.Flag,
				Command:     def.Command,
				Formatter:   def.Formatter,
			})
		case *ActionDef:
			events = append(events, &Event{
				Key:         entry.Key,
				Kind:        Actions,
				Description: def.Description,
				Command:     def.Command,
			})
		}
	}
	return events
}

// convertSwitch activates the switch when its flag is present verbatim in the
// active list, falling back to the authored default when no list exists.
// Handlers survive only on extension-marked flags; they serve help display.
func convertSwitch(key string, def *SwitchDef, active []string) *Event {
	ev := &Event{
		Key:         key,
		Kind:        Switches,
		Description: def.Description,
		Flag:        def.Flag,
	}
	if active == nil {
		ev.Use = def.EnabledByDefault
	} else {
		for _, a := range active {
			if a == def.Flag {
				ev.Use = true
				break
			}
		}
	}
	if strings.HasPrefix(def.Flag, ExtensionMarker) {
		ev.Handler = def.Handler
	}
	return ev
}

// convertOption activates the option when some active entry starts with its
// flag prefix, capturing the remainder as the value. The first match wins;
// declarers must keep prefixes disjoint. An absent reader defaults to the
// generic line-prompt reader.
func convertOption(key string, def *OptionDef, active []string) *Event {
	ev := &Event{
		Key:         key,
		Kind:        Options,
		Description: def.Description,
		Flag:        def.Flag,
		Reader:      def.Reader,
	}
	if ev.Reader == nil {
		ev.Reader = LineReader
	}
	for _, a := range active {
		if strings.HasPrefix(a, def.Flag) {
			ev.Use = true
			ev.Val = strings.TrimPrefix(a, def.Flag)
			return ev
		}
	}
	if active == nil && def.HasDefault {
		ev.Use = true
		ev.Val = def.Default
	}
	return ev
}

// =============================================================================
// DEFAULT LINE READER
// =============================================================================

// LineReader is the generic fallback value reader: a line prompt on the
// process terminal. An EOF or read error counts as cancellation.
func LineReader(prompt, previous string) (string, bool) {
	if previous != "" {
		fmt.Fprintf(os.Stderr, "%s[%s] ", prompt, previous)
	} else {
		fmt.Fprint(os.Stderr, prompt)
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && previous != "" {
		return previous, true
	}
	return line, true
}
