// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package promptstep asks the user a question and stores the answer as a step parameter.
package promptstep

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

const stepType = "prompt"

var (
	// ErrEmptyQuestion is returned for a definition without a question.
	ErrEmptyQuestion = errors.New("question is required")
	// ErrNoProps is returned when the step runs without an invocation to prompt on.
	ErrNoProps = errors.New("prompt step needs invocation props")
)

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a prompt step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	Question             string `yaml:"question" json:"question"`
	// Param receives the answer. Defaults to the step name.
	Param   string `yaml:"param,omitempty" json:"param,omitempty"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
	// Confirm turns the question into a yes/no confirmation. A negative answer cancels the run.
	Confirm bool `yaml:"confirm,omitempty" json:"confirm,omitempty"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates prompt steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal prompt step definition: %w", err)
	}

	if def.Question == "" {
		return actionseq.Step{}, ErrEmptyQuestion
	}

	return New(def), nil
}

// New returns the step for def.
// A parameter already set, from a flag for instance, is kept and no question is asked.
func New(def *Definition) actionseq.Step {
	param := def.Param
	if param == "" {
		param = def.Name
	}

	return def.Step(func(_ context.Context, opts *actionseq.Options) (any, error) {
		if v := opts.Param(param); v != nil {
			if def.Confirm && !steps.Truthy(v) {
				return v, generator.ErrCancelled
			}

			return v, nil
		}

		if opts.Props == nil {
			return nil, ErrNoProps
		}

		question, err := steps.Expand(def.Question, opts)
		if err != nil {
			return nil, err
		}

		if p, ok := opts.Progress.(progress.Pauser); ok {
			p.Pause()
			defer p.Resume()
		}

		ans, err := opts.Props.Prompt(question, def.Default)
		if err != nil {
			if errors.Is(err, props.ErrPromptAborted) {
				return nil, generator.ErrCancelled
			}

			return nil, err
		}

		if !def.Confirm {
			opts.SetParam(param, ans)
			return ans, nil
		}

		yes := props.IsYes(ans)
		opts.SetParam(param, yes)

		if !yes {
			return false, generator.ErrCancelled
		}

		return true, nil
	})
}
