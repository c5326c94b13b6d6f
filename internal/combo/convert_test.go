// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"testing"
)

func TestConvertSwitchesAgainstActiveList(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("switches", "a", &SwitchDef{Flag: "-a"})
	c.Bind("switches", "b", &SwitchDef{Flag: "-b", EnabledByDefault: true})

	// A saved list decides activation by membership alone; the authored
	// default on b does not resurrect it.
	events := Convert(Switches, c.Entries(Switches), []string{"-a"})
	if !events[0].Use {
		t.Error("a.Use = false, want true")
	}
	if events[1].Use {
		t.Error("b.Use = true, want false")
	}
}

func TestConvertSwitchesAuthoredDefaults(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("switches", "a", &SwitchDef{Flag: "-a"})
	c.Bind("switches", "b", &SwitchDef{Flag: "-b", EnabledByDefault: true})

	// No saved list at all: authored defaults apply.
	events := Convert(Switches, c.Entries(Switches), nil)
	if events[0].Use {
		t.Error("a.Use = true, want false")
	}
	if !events[1].Use {
		t.Error("b.Use = false, want true")
	}
}

func TestConvertSwitchHandlerRetention(t *testing.T) {
	called := func() {}
	c := NewCombo("commit", "")
	c.Bind("switches", "x", &SwitchDef{Flag: "++ext", Handler: called})
	c.Bind("switches", "a", &SwitchDef{Flag: "-a", Handler: called})

	events := Convert(Switches, c.Entries(Switches), nil)
	if events[0].Handler == nil {
		t.Error("extension switch lost its handler")
	}
	if events[1].Handler != nil {
		t.Error("plain switch retained a handler")
	}
}

func TestConvertOptions(t *testing.T) {
	reader := func(prompt, prev string) (string, bool) { return "", false }
	c := NewCombo("commit", "")
	c.Bind("options", "o", &OptionDef{Flag: "--opt=", Reader: reader})
	c.Bind("options", "s", &OptionDef{Flag: "-S", Reader: reader})

	events := Convert(Options, c.Entries(Options), []string{"--opt=5", "-Skey"})

	if !events[0].Use || events[0].Val != "5" {
		t.Errorf("opt = use:%v val:%q, want use:true val:%q", events[0].Use, events[0].Val, "5")
	}
	if !events[1].Use || events[1].Val != "key" {
		t.Errorf("sign = use:%v val:%q, want use:true val:%q", events[1].Use, events[1].Val, "key")
	}
}

func TestConvertOptionFirstMatchWins(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("options", "o", &OptionDef{Flag: "--opt="})

	events := Convert(Options, c.Entries(Options), []string{"--opt=first", "--opt=second"})
	if events[0].Val != "first" {
		t.Fatalf("val = %q, want %q", events[0].Val, "first")
	}
}

func TestConvertOptionAuthoredDefault(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("options", "o", &OptionDef{Flag: "--opt=", Default: "5", HasDefault: true})

	// Authored default applies only when nothing was ever saved.
	events := Convert(Options, c.Entries(Options), nil)
	if !events[0].Use || events[0].Val != "5" {
		t.Fatalf("use:%v val:%q, want use:true val:%q", events[0].Use, events[0].Val, "5")
	}

	events = Convert(Options, c.Entries(Options), []string{})
	if events[0].Use {
		t.Fatal("authored default applied despite saved empty list")
	}
}

func TestConvertOptionDefaultReader(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("options", "o", &OptionDef{Flag: "--opt="})

	events := Convert(Options, c.Entries(Options), nil)
	if events[0].Reader == nil {
		t.Fatal("missing reader not defaulted to the line reader")
	}
}

func TestConvertPassesHeadingsThrough(t *testing.T) {
	c := NewCombo("commit", "")
	c.AddHeading(Actions, "Commit")
	c.Bind("actions", "c", &ActionDef{Description: "commit", Command: func(*CommandContext) error { return nil }})

	events := Convert(Actions, c.Entries(Actions), nil)
	if !events[0].IsHeading() || events[0].Heading != "Commit" {
		t.Fatalf("first event = %+v, want heading", events[0])
	}
	if events[1].Command == nil {
		t.Fatal("action lost its command")
	}
}

func TestConvertVariablesCarryCapabilities(t *testing.T) {
	format := func() string { return "origin" }
	c := NewCombo("push", "")
	c.Bind("variables", "r", &VariableDef{
		Description: "set remote",
		Command:     func(*CommandContext) error { return nil },
		Formatter:   format,
		Flag:        "remote",
	})

	events := Convert(Variables, c.Entries(Variables), nil)
	ev := events[0]
	if ev.Command == nil || ev.Formatter == nil || ev.Flag != "remote" {
		t.Fatalf("variable conversion dropped capabilities: %+v", ev)
	}
	if ev.Use || ev.Val != "" {
		t.Fatal("variables must not carry use/val state")
	}
}

// Round trip: resolving a conversion of args built purely from this combo's
// own flags reproduces those args.
func TestConvertResolveRoundTrip(t *testing.T) {
	c := NewCombo("commit", "")
	c.Bind("switches", "a", &SwitchDef{Flag: "-a"})
	c.Bind("switches", "v", &SwitchDef{Flag: "-v"})
	c.Bind("options", "o", &OptionDef{Flag: "--opt="})

	tests := [][]string{
		{},
		{"-a"},
		{"-v", "--opt=9"},
		{"-a", "-v", "--opt="},
	}

	for _, active := range tests {
		switches := Convert(Switches, c.Entries(Switches), active)
		options := Convert(Options, c.Entries(Options), active)
		got := Resolve(switches, options)
		if len(got) == 0 && len(active) == 0 {
			continue
		}
		// Resolution reorders to declaration order; compare as sets.
		want := map[string]bool{}
		for _, a := range active {
			want[a] = true
		}
		if len(got) != len(active) {
			t.Fatalf("round trip of %v = %v", active, got)
		}
		for _, a := range got {
			if !want[a] {
				t.Fatalf("round trip of %v produced stray %q", active, a)
			}
		}
	}
}
