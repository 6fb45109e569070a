// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execstep runs an executable found on PATH without a shell.
package execstep

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/process"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

const stepType = "exec"

// ErrEmptyCommand is returned for a definition without a command.
var ErrEmptyCommand = errors.New("command is required")

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of an exec step.
// When Args is empty, Command is split into words with shell quoting rules.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	Command              string   `yaml:"command" json:"command"`
	Args                 []string `yaml:"args,omitempty" json:"args,omitempty"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates exec steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal exec step definition: %w", err)
	}

	if def.Command == "" {
		return actionseq.Step{}, ErrEmptyCommand
	}

	return New(def), nil
}

// Argv expands the command and arguments of def.
func (def *Definition) Argv(opts *actionseq.Options) ([]string, error) {
	if len(def.Args) == 0 {
		words, err := steps.Fields(def.Command, opts)
		if err != nil {
			return nil, err
		}

		if len(words) == 0 {
			return nil, ErrEmptyCommand
		}

		return words, nil
	}

	name, err := steps.Expand(def.Command, opts)
	if err != nil {
		return nil, err
	}

	argv := []string{name}

	for _, a := range def.Args {
		ea, err := steps.Expand(a, opts)
		if err != nil {
			return nil, err
		}

		argv = append(argv, ea)
	}

	return argv, nil
}

// New returns the step for def. Its result is the exit code.
func New(def *Definition) actionseq.Step {
	return def.Step(func(ctx context.Context, opts *actionseq.Options) (any, error) {
		argv, err := def.Argv(opts)
		if err != nil {
			return nil, err
		}

		cmd, err := process.Exec(argv[0], argv[1:]...)
		if err != nil {
			return nil, err
		}

		if cmd.Dir, err = def.Dir(opts); err != nil {
			return nil, err
		}

		if cmd.Env, err = steps.ExpandAll(def.Env, opts); err != nil {
			return nil, err
		}

		cmd.OnOutput = steps.Output(def.Name, opts)

		code, err := cmd.Run(ctx)
		if err != nil {
			return nil, err
		}

		return code, nil
	})
}
