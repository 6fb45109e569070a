// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shellstep runs a command line with the system shell.
package shellstep

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/process"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

const stepType = "shell"

// ErrEmptyCommandLine is returned for a definition without a command line.
var ErrEmptyCommandLine = errors.New("command_line is required")

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a shell step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	// CommandLine is passed to the shell unchanged. Step parameters and props are exported
	// to its environment, so the shell expands $name itself.
	CommandLine string `yaml:"command_line" json:"command_line"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates shell steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal shell step definition: %w", err)
	}

	if def.CommandLine == "" {
		return actionseq.Step{}, ErrEmptyCommandLine
	}

	return New(def), nil
}

// New returns the step for def. Its result is the exit code.
func New(def *Definition) actionseq.Step {
	return def.Step(func(ctx context.Context, opts *actionseq.Options) (any, error) {
		dir, err := def.Dir(opts)
		if err != nil {
			return nil, err
		}

		extra, err := steps.ExpandAll(def.Env, opts)
		if err != nil {
			return nil, err
		}

		env := steps.Environ(opts)
		maps.Copy(env, extra)

		cmd := process.Shell(ctx, def.CommandLine)
		cmd.Dir = dir
		cmd.Env = env
		cmd.OnOutput = steps.Output(def.Name, opts)

		code, err := cmd.Run(ctx)
		if err != nil {
			return nil, err
		}

		return code, nil
	})
}
