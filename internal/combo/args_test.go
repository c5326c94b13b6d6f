// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"fmt"
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"--gpg-sign=", "--gpg-sign=ABC123", true},
		{"--gpg-sign=", "--gpg-sign=", true},
		{"--gpg-sign=", "--gpg", false},
		{"-S", "-SABC123", true},
		{"-S", "-S", true},
		{"-a", "-a", true},
		{"-a", "-ab", false}, // lowercase short flags match exactly
		{"--all", "--all", true},
		{"--all", "--all-the-things", false},
	}

	for _, tc := range tests {
		got := Matches(tc.pattern, tc.candidate)
		if got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.pattern, tc.candidate, got, tc.want)
		}
	}
}

func TestFilter(t *testing.T) {
	args := []string{"-a", "-b", "--opt=9"}

	tests := []struct {
		name     string
		patterns []string
		mode     FilterMode
		want     []string
	}{
		{"only keeps matches", []string{"-a"}, FilterOnly, []string{"-a"}},
		{"not drops matches", []string{"-a"}, FilterNot, []string{"-b", "--opt=9"}},
		{"prefix pattern", []string{"--opt="}, FilterOnly, []string{"--opt=9"}},
		{"no patterns keeps nothing under only", nil, FilterOnly, nil},
		{"no patterns keeps all under not", nil, FilterNot, []string{"-a", "-b", "--opt=9"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(args, tc.patterns, tc.mode)
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Fatalf("Filter = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveOrderAndContent(t *testing.T) {
	switches := []*Event{
		{Kind: Switches, Heading: "Flags"},
		{Key: "a", Kind: Switches, Flag: "-a", Use: true},
		{Key: "b", Kind: Switches, Flag: "-b", Use: false},
		{Key: "c", Kind: Switches, Flag: "-c", Use: true},
	}
	options := []*Event{
		{Key: "o", Kind: Options, Flag: "--opt=", Use: true, Val: "9"},
		{Key: "s", Kind: Options, Flag: "-S", Use: false, Val: "ignored"},
	}

	got := Resolve(switches, options)
	want := []string{"-a", "-c", "--opt=9"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}
}

func TestSplitCombineFiles(t *testing.T) {
	flags := []string{"-a", "--opt=9"}
	files := []string{"main.go", "dir/other.go"}

	combined := CombineFiles(flags, files)
	if len(combined) != 3 {
		t.Fatalf("combined len = %d, want 3", len(combined))
	}

	gotFlags, gotFiles := SplitFiles(combined)
	if fmt.Sprint(gotFlags) != fmt.Sprint(flags) {
		t.Fatalf("flags = %v, want %v", gotFlags, flags)
	}
	if fmt.Sprint(gotFiles) != fmt.Sprint(files) {
		t.Fatalf("files = %v, want %v", gotFiles, files)
	}
}

func TestSplitFilesEdgeCases(t *testing.T) {
	// No synthetic argument.
	flags, files := SplitFiles([]string{"-a"})
	if len(files) != 0 || fmt.Sprint(flags) != fmt.Sprint([]string{"-a"}) {
		t.Fatalf("flags = %v files = %v", flags, files)
	}

	// Bare marker carries no files.
	flags, files = SplitFiles([]string{"-a", FileListMarker})
	if len(files) != 0 {
		t.Fatalf("files = %v, want none", files)
	}
	if fmt.Sprint(flags) != fmt.Sprint([]string{"-a"}) {
		t.Fatalf("flags = %v, want [-a]", flags)
	}

	// No files means CombineFiles adds nothing.
	if got := CombineFiles([]string{"-a"}, nil); len(got) != 1 {
		t.Fatalf("combined = %v, want [-a]", got)
	}
}
