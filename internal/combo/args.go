// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package combo

import (
	"strings"
)

// =============================================================================
// ARGUMENT SERIALIZATION
// =============================================================================

// ValueMarker is the assignment suffix that makes a flag a value-carrying
// prefix ("--opt=" style).
const ValueMarker = "="

// FileListMarker is the reserved token that introduces the synthetic file
// list argument. Paths inside the synthetic argument are separated by NUL,
// which cannot occur in a path.
const FileListMarker = "--"

const fileListSep = "\x00"

// Resolve flattens live events into the ordered argument list: every switch
// and option with Use set contributes its flag (plus value for options) in
// declaration order, switches first. Variables and actions contribute
// nothing.
func Resolve(switches, options []*Event) []string {
	var args []string
	for _, ev := range switches {
		if ev.IsHeading() || !ev.Use {
			continue
		}
		args = append(args, ev.Flag)
	}
	for _, ev := range options {
		if ev.IsHeading() || !ev.Use {
			continue
		}
		args = append(args, ev.Flag+ev.Val)
	}
	return args
}

// Matches reports whether candidate matches pattern. Patterns ending in the
// value marker ("--opt=") and single-dash uppercase short flags ("-S") match
// by prefix; everything else matches by exact equality.
func Matches(pattern, candidate string) bool {
	if strings.HasSuffix(pattern, ValueMarker) || isShortValueFlag(pattern) {
		return strings.HasPrefix(candidate, pattern)
	}
	return pattern == candidate
}

// isShortValueFlag reports a single-dash-plus-uppercase-letter pattern, the
// classic concatenated-value short flag ("-S<keyid>").
func isShortValueFlag(pattern string) bool {
	return len(pattern) == 2 && pattern[0] == '-' && pattern[1] >= 'A' && pattern[1] <= 'Z'
}

// FilterMode selects how Filter treats matching arguments.
type FilterMode int

const (
	// FilterOnly keeps arguments matching any pattern.
	FilterOnly FilterMode = iota
	// FilterNot keeps arguments matching no pattern.
	FilterNot
)

// Filter returns the arguments kept by mode against the patterns.
func Filter(args, patterns []string, mode FilterMode) []string {
	var out []string
	for _, a := range args {
		matched := false
		for _, p := range patterns {
			if Matches(p, a) {
				matched = true
				break
			}
		}
		if (mode == FilterOnly) == matched {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// FILE LIST SPLIT / COMBINE
// =============================================================================

// SplitFiles extracts the synthetic file list argument from args, returning
// the remaining flags and the ordered file paths. Only the first synthetic
// argument is consumed; a bare marker yields no files.
func SplitFiles(args []string) (flags, files []string) {
	taken := false
	for _, a := range args {
		if !taken && (a == FileListMarker || strings.HasPrefix(a, FileListMarker+fileListSep)) {
			taken = true
			rest := strings.TrimPrefix(a, FileListMarker)
			rest = strings.TrimPrefix(rest, fileListSep)
			if rest != "" {
				files = strings.Split(rest, fileListSep)
			}
			continue
		}
		flags = append(flags, a)
	}
	return flags, files
}

// CombineFiles is the inverse of SplitFiles: it appends the file paths to the
// flags as one synthetic argument. No files means no synthetic argument.
func CombineFiles(flags, files []string) []string {
	if len(files) == 0 {
		return flags
	}
	out := make([]string, len(flags), len(flags)+1)
	copy(out, flags)
	return append(out, FileListMarker+fileListSep+strings.Join(files, fileListSep))
}
