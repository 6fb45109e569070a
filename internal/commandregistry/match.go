// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"strings"
)

// MatchKind classifies an invocation argument.
type MatchKind int

const (
	// MatchNone means no command starts with the argument.
	MatchNone MatchKind = iota
	// MatchFlag means the argument is a flag and never a command.
	MatchFlag
	// MatchExact means a command has exactly this name.
	MatchExact
	// MatchPrefix means exactly one command starts with the argument.
	MatchPrefix
	// MatchAmbiguous means more than one command starts with the argument.
	MatchAmbiguous
)

// String implements the Stringer interface for MatchKind.
func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "none"
	case MatchFlag:
		return "flag"
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Match is the result of matching an argument against the command names.
type Match struct {
	Kind  MatchKind
	Names []string // Matching command names, sorted.
}

// Name returns the single matched name for MatchExact and MatchPrefix, otherwise "".
func (m Match) Name() string {
	if (m.Kind == MatchExact || m.Kind == MatchPrefix) && len(m.Names) == 1 {
		return m.Names[0]
	}

	return ""
}

// Match classifies arg. Prefixes are compared literally.
func (r *Registry) Match(arg string) Match {
	if strings.HasPrefix(arg, "-") {
		return Match{Kind: MatchFlag}
	}

	if _, ok := r.Get(arg); ok {
		return Match{Kind: MatchExact, Names: []string{arg}}
	}

	var names []string

	if arg != "" {
		for _, n := range r.AllCommandNames() {
			if strings.HasPrefix(n, arg) {
				names = append(names, n)
			}
		}
	}

	switch len(names) {
	case 0:
		return Match{Kind: MatchNone}
	case 1:
		return Match{Kind: MatchPrefix, Names: names}
	default:
		return Match{Kind: MatchAmbiguous, Names: names}
	}
}
