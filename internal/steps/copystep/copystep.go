// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package copystep copies a file or directory tree.
package copystep

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
)

const stepType = "copy"

// ErrMissingPaths is returned when source or destination is empty.
var ErrMissingPaths = errors.New("source and destination are required")

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a copy step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	Source               string `yaml:"source" json:"source"`
	Destination          string `yaml:"destination" json:"destination"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates copy steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal copy step definition: %w", err)
	}

	if def.Source == "" || def.Destination == "" {
		return actionseq.Step{}, ErrMissingPaths
	}

	return New(def), nil
}

// New returns the step for def. Its result is the destination path.
func New(def *Definition) actionseq.Step {
	return def.Step(func(_ context.Context, opts *actionseq.Options) (any, error) {
		src, err := steps.Path(def.Source, opts)
		if err != nil {
			return nil, err
		}

		dst, err := steps.Path(def.Destination, opts)
		if err != nil {
			return nil, err
		}

		fs := steps.FS(opts)
		if err := steps.CopyTree(fs, src, fs, dst); err != nil {
			return nil, err
		}

		return dst, nil
	})
}
