// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/arcli/internal/module"
)

// ErrUnknownModuleKind is returned by Put for a module that is neither top-level nor a subcommand.
var ErrUnknownModuleKind = errors.New("unknown module kind")

// Registry holds top-level commands and subcommands.
type Registry struct {
	mu          sync.RWMutex
	commands    map[string]module.Module
	subcommands map[string]module.Module
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands:    make(map[string]module.Module),
		subcommands: make(map[string]module.Module),
	}
}

// Put stores m under its key, replacing any module with the same key.
// It returns the replaced module, if any.
func (r *Registry) Put(m module.Module) (module.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target map[string]module.Module

	switch {
	case isTopLevel(m):
		target = r.commands
	case isSub(m):
		target = r.subcommands
	default:
		return nil, ErrUnknownModuleKind
	}

	prev := target[m.Key()]
	target[m.Key()] = m

	return prev, nil
}

func isTopLevel(m module.Module) bool {
	_, ok := module.AsTopLevel(m)
	return ok
}

func isSub(m module.Module) bool {
	_, ok := module.AsSub(m)
	return ok
}

// Get returns the top-level module for name.
func (r *Registry) Get(name string) (module.Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.commands[name]

	return m, ok
}

// GetSubcommand returns the subcommand for a dotted id.
func (r *Registry) GetSubcommand(id string) (module.Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.subcommands[module.NormalizeID(id)]

	return m, ok
}

// AllCommandNames returns the top-level names, sorted.
func (r *Registry) AllCommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.commands))
}

// AllSubcommandIDs returns the dotted subcommand ids, sorted.
func (r *Registry) AllSubcommandIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.subcommands))
}

// Subcommands returns the direct subcommands of parent, sorted by action.
func (r *Registry) Subcommands(parent string) []module.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parent = module.NormalizeID(parent)

	var out []module.Module

	for _, m := range r.subcommands {
		if s, ok := module.AsSub(m); ok && s.Parent == parent {
			out = append(out, m)
		}
	}

	slices.SortFunc(out, func(a, b module.Module) int {
		return strings.Compare(a.Key(), b.Key())
	})

	return out
}

// Len returns the number of modules of both kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands) + len(r.subcommands)
}
