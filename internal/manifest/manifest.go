// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest decodes declarative command files (index.yaml, index.yml, index.hcl)
// and turns them into command modules.
package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	// ErrNotCommand is returned for a file that declares neither a name nor an id.
	// Loaders skip such files without reporting them.
	ErrNotCommand = errors.New("manifest declares neither name nor id")
	// ErrMalformed is returned for a manifest that cannot describe a command.
	ErrMalformed = errors.New("malformed manifest")
	// ErrDecode is returned when a manifest file cannot be decoded.
	ErrDecode = errors.New("failed to decode manifest")
)

// Flag types.
const (
	FlagString = "string"
	FlagBool   = "bool"
	FlagInt    = "int"
)

// Manifest is the decoded form of a command file.
type Manifest struct {
	Name        string           `yaml:"name,omitempty"`
	ID          string           `yaml:"id,omitempty"`
	Usage       string           `yaml:"usage,omitempty"`
	Description string           `yaml:"description,omitempty"`
	Aliases     []string         `yaml:"aliases,omitempty"`
	Help        string           `yaml:"help,omitempty"`
	Success     string           `yaml:"success,omitempty"`
	Failure     string           `yaml:"failure,omitempty"`
	Flags       []Flag           `yaml:"flags,omitempty"`
	Actions     []map[string]any `yaml:"actions,omitempty"`
}

// Flag is a command line flag exposed to the actions as a parameter of the same name.
type Flag struct {
	Name    string `yaml:"name"`
	Short   string `yaml:"short,omitempty"`
	Usage   string `yaml:"usage,omitempty"`
	Type    string `yaml:"type,omitempty"`
	Default string `yaml:"default,omitempty"`
}

// DecodeYAML decodes a YAML manifest.
func DecodeYAML(data []byte) (*Manifest, error) {
	m := new(Manifest)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	return m, nil
}

// Validate checks that m describes exactly one kind of command with usable flags.
func (m *Manifest) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.ID = strings.TrimSpace(m.ID)

	switch {
	case m.Name == "" && m.ID == "":
		return ErrNotCommand
	case m.Name != "" && m.ID != "":
		return fmt.Errorf("%w: both name %q and id %q are set", ErrMalformed, m.Name, m.ID)
	case strings.ContainsAny(m.Name, " \t<>."):
		return fmt.Errorf("%w: invalid name %q", ErrMalformed, m.Name)
	}

	seen := make(map[string]struct{}, len(m.Flags))

	for i := range m.Flags {
		f := &m.Flags[i]
		if f.Name == "" {
			return fmt.Errorf("%w: flag %d has no name", ErrMalformed, i)
		}

		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate flag %q", ErrMalformed, f.Name)
		}

		seen[f.Name] = struct{}{}

		switch f.Type {
		case "":
			f.Type = FlagString
		case FlagString, FlagBool, FlagInt:
		default:
			return fmt.Errorf("%w: flag %q has unknown type %q", ErrMalformed, f.Name, f.Type)
		}

		if err := f.checkDefault(); err != nil {
			return fmt.Errorf("%w: flag %q: %w", ErrMalformed, f.Name, err)
		}
	}

	return nil
}

// checkDefault reports a default that does not parse as the flag type. An empty default is the zero value.
func (f *Flag) checkDefault() error {
	if f.Default == "" {
		return nil
	}

	var err error

	switch f.Type {
	case FlagBool:
		_, err = strconv.ParseBool(f.Default)
	case FlagInt:
		_, err = strconv.Atoi(f.Default)
	}

	if err != nil {
		return fmt.Errorf("invalid %s default %q", f.Type, f.Default)
	}

	return nil
}
