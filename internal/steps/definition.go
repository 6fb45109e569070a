// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package steps

import (
	"context"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
)

// BaseDefinition contains fields common to all step types.
type BaseDefinition struct {
	// Type selects the step implementation, e.g. "shell" or "download".
	Type string `yaml:"type" json:"type"`
	// Name is the step name, unique within a manifest.
	Name string `yaml:"name" json:"name"`
	// When names a parameter that must be truthy for the step to run.
	When string `yaml:"when,omitempty" json:"when,omitempty"`
	// Unless names a parameter that must be falsy for the step to run.
	Unless string `yaml:"unless,omitempty" json:"unless,omitempty"`
	// WorkingDirectory is where the step runs, relative to the invocation directory.
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty"`
	// Env adds environment variables for subprocess steps.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Maker creates a step from its serialized definition.
type Maker interface {
	Create(ctx context.Context, payload []byte) (actionseq.Step, error)
}

// MakerFunc adapts a function to Maker.
type MakerFunc func(ctx context.Context, payload []byte) (actionseq.Step, error)

// Create implements Maker.
func (f MakerFunc) Create(ctx context.Context, payload []byte) (actionseq.Step, error) {
	return f(ctx, payload)
}
