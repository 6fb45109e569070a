// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mkdirstep creates a directory and its parents.
package mkdirstep

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

const stepType = "mkdir"

var (
	// ErrEmptyPath is returned for a definition without a path.
	ErrEmptyPath = errors.New("path is required")
	// ErrMkdir is returned when the directory cannot be created.
	ErrMkdir = errors.New("failed to create directory")
)

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a mkdir step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	Path                 string `yaml:"path" json:"path"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates mkdir steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal mkdir step definition: %w", err)
	}

	if def.Path == "" {
		return actionseq.Step{}, ErrEmptyPath
	}

	return New(def), nil
}

// New returns the step for def. Its result is the created path.
func New(def *Definition) actionseq.Step {
	return def.Step(func(_ context.Context, opts *actionseq.Options) (any, error) {
		p, err := steps.Path(def.Path, opts)
		if err != nil {
			return nil, err
		}

		if err := steps.FS(opts).MkdirAll(p, 0o755); err != nil {
			return nil, errors.Join(ErrMkdir, err)
		}

		return p, nil
	})
}
