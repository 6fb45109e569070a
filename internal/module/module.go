// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package module defines command modules: top-level commands keyed by name and
// subcommands keyed by a dotted id such as "reactium.init".
package module

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/urfave/cli/v3"
)

// LayerBuiltin is the layer of modules compiled into the binary.
const LayerBuiltin = "builtin"

var (
	// ErrEmptyName is returned for a top-level module without a name.
	ErrEmptyName = errors.New("module name is empty")
	// ErrInvalidID is returned for an id that does not have at least a parent and an action.
	ErrInvalidID = errors.New("subcommand id must have a parent and an action")
	// ErrNoRegister is returned for a module without a register function.
	ErrNoRegister = errors.New("module has no register function")
)

// RegisterFunc declares a command's CLI surface on parent.
type RegisterFunc func(parent *cli.Command, p *props.Props) error

// Source records where a module was loaded from.
type Source struct {
	Layer string // builtin, root, core, project or home.
	Path  string // Manifest path, empty for compiled modules.
}

// String returns "layer" or "layer:path".
func (s Source) String() string {
	if s.Path == "" {
		return s.Layer
	}

	return s.Layer + ":" + s.Path
}

// Module is either a *TopLevel or a *Sub.
type Module interface {
	// Key is the registry key: the name, or the dotted id.
	Key() string
	// Origin returns where the module came from.
	Origin() Source
	// Register declares the command on parent.
	Register(parent *cli.Command, p *props.Props) error

	module()
}

// TopLevel is a command attached to the root.
type TopLevel struct {
	Name     string
	Help     string
	Source   Source
	Register RegisterFunc
}

// Sub is a command attached below Parent.
type Sub struct {
	Parent   string // Dotted id of the parent, e.g. "reactium" or "reactium.plugin".
	Action   string // Last segment of the id.
	Help     string
	Source   Source
	Register RegisterFunc
}

var (
	_ Module = (*topLevel)(nil)
	_ Module = (*sub)(nil)
)

type topLevel struct{ TopLevel }

type sub struct{ Sub }

func (m *topLevel) Key() string { return m.Name }
func (m *topLevel) Origin() Source { return m.Source }
func (m *topLevel) Register(parent *cli.Command, p *props.Props) error { return m.TopLevel.Register(parent, p) }
func (*topLevel) module() {}

func (m *sub) Key() string { return m.Parent + "." + m.Action }
func (m *sub) Origin() Source { return m.Source }
func (m *sub) Register(parent *cli.Command, p *props.Props) error { return m.Sub.Register(parent, p) }
func (*sub) module() {}

// NewTopLevel validates t and wraps it as a Module.
func NewTopLevel(t TopLevel) (Module, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, ErrEmptyName
	}

	if t.Register == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRegister, t.Name)
	}

	return &topLevel{t}, nil
}

// NewSub parses id ("parent <action>" or "parent.action"), validates s and wraps it as a Module.
// Parent and Action of s are overwritten from id.
func NewSub(id string, s Sub) (Module, error) {
	parent, action, err := SplitID(id)
	if err != nil {
		return nil, err
	}

	if s.Register == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRegister, id)
	}

	s.Parent, s.Action = parent, action

	return &sub{s}, nil
}

// AsTopLevel returns the TopLevel of m, if it is one.
func AsTopLevel(m Module) (TopLevel, bool) {
	if t, ok := m.(*topLevel); ok {
		return t.TopLevel, true
	}

	return TopLevel{}, false
}

// AsSub returns the Sub of m, if it is one.
func AsSub(m Module) (Sub, bool) {
	if s, ok := m.(*sub); ok {
		return s.Sub, true
	}

	return Sub{}, false
}

// Help returns the help text of m.
func Help(m Module) string {
	switch v := m.(type) {
	case *topLevel:
		return v.Help
	case *sub:
		return v.Help
	}

	return ""
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeID turns "parent <child sub>" into "parent.child.sub":
// angle brackets are removed, surrounding whitespace is trimmed and every
// remaining run of whitespace becomes a single dot.
func NormalizeID(id string) string {
	id = strings.NewReplacer("<", "", ">", "").Replace(id)

	return whitespace.ReplaceAllString(strings.TrimSpace(id), ".")
}

// SplitID normalizes id and splits it into its parent and last segment.
func SplitID(id string) (parent, action string, err error) {
	norm := NormalizeID(id)

	i := strings.LastIndex(norm, ".")
	if i <= 0 || i == len(norm)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return norm[:i], norm[i+1:], nil
}
