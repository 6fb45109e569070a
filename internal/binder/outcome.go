// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binder

import (
	"slices"

	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/spf13/afero"
)

// Outcome says whether the short startup pass can serve an invocation.
type Outcome int

const (
	// NeedsFullDiscovery means every layer must be loaded before dispatch.
	NeedsFullDiscovery Outcome = iota
	// Resolved means the commands loaded so far serve the invocation.
	Resolved
	// Help means help output was requested and must list every command.
	Help
)

// String implements the Stringer interface for Outcome.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Help:
		return "help"
	default:
		return "needs-full-discovery"
	}
}

var (
	helpArgs    = []string{"-h", "--help", "help"}
	versionArgs = []string{"-v", "--version"}
)

// Classify decides the outcome of args (including the program name) against the short registry.
// higher are the layers not loaded yet; only the static base directory of each glob is checked.
func Classify(args []string, reg *commandregistry.Registry, fs afero.Fs, higher []searchpath.Layer) Outcome {
	if len(args) < 2 {
		return Help
	}

	if slices.ContainsFunc(args[1:], func(a string) bool { return slices.Contains(helpArgs, a) }) {
		return Help
	}

	if slices.Contains(versionArgs, args[1]) {
		return Resolved
	}

	switch reg.Match(args[1]).Kind {
	case commandregistry.MatchExact, commandregistry.MatchPrefix:
	default:
		return NeedsFullDiscovery
	}

	for _, layer := range higher {
		for _, glob := range layer.Globs {
			if searchpath.BaseExists(fs, glob) {
				return NeedsFullDiscovery
			}
		}
	}

	return Resolved
}
