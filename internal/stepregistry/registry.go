// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stepregistry maps step types to the makers that build them.
package stepregistry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

var (
	// ErrUnknownStepType is returned when a step type is not registered.
	ErrUnknownStepType = errors.New("unknown step type")
	// ErrStepCreation is returned when a step cannot be created.
	ErrStepCreation = errors.New("failed to create step")
	// ErrStepUnmarshal is returned when a step cannot be unmarshaled.
	ErrStepUnmarshal = errors.New("failed to unmarshal step definition")
	// ErrMissingStepName is returned when a step has no name.
	ErrMissingStepName = errors.New("step has no name")
)

// Registry holds the mapping between step types and their makers.
type Registry map[string]steps.Maker

// DefaultRegistry is filled by the init functions of the step packages.
var DefaultRegistry = make(Registry)

// Register registers a step type with its maker in DefaultRegistry.
func Register(stepType string, maker steps.Maker) {
	DefaultRegistry[stepType] = maker
}

// Types returns the registered step types, sorted.
func (r Registry) Types() []string {
	return slices.Sorted(maps.Keys(r))
}

// stepHeader is the part of every step definition needed to dispatch it.
type stepHeader struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// Create builds a step from a YAML or JSON definition.
func (r Registry) Create(ctx context.Context, payload []byte) (actionseq.Step, error) {
	var hdr stepHeader
	if err := yaml.Unmarshal(payload, &hdr); err != nil {
		return actionseq.Step{}, errors.Join(ErrStepUnmarshal, err)
	}

	maker, ok := r[hdr.Type]
	if !ok {
		return actionseq.Step{}, fmt.Errorf("%w: %q", ErrUnknownStepType, hdr.Type)
	}

	if hdr.Name == "" {
		return actionseq.Step{}, fmt.Errorf("%w: type %s", ErrMissingStepName, hdr.Type)
	}

	st, err := maker.Create(ctx, payload)
	if err != nil {
		return actionseq.Step{}, fmt.Errorf("%w: %s %q: %w", ErrStepCreation, hdr.Type, hdr.Name, err)
	}

	return st, nil
}

// CreateStepFromYAML builds a step using DefaultRegistry.
func CreateStepFromYAML(ctx context.Context, payload []byte) (actionseq.Step, error) {
	return DefaultRegistry.Create(ctx, payload)
}
