// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package templatestep renders a file or a directory of files with text/template.
//
// The template data is a map holding the props (cwd, root, home), the step parameters and
// the step's own data entries, in that order of precedence from lowest to highest.
// Files ending in .tmpl are written without the suffix.
package templatestep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/spf13/afero"
)

const (
	stepType = "template"
	tmplExt  = ".tmpl"
)

var (
	// ErrMissingPaths is returned when source or destination is empty.
	ErrMissingPaths = errors.New("source and destination are required")
	// ErrRender is returned when a template cannot be parsed or executed.
	ErrRender = errors.New("failed to render template")
)

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a template step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	Source               string            `yaml:"source" json:"source"`
	Destination          string            `yaml:"destination" json:"destination"`
	Data                 map[string]string `yaml:"data,omitempty" json:"data,omitempty"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates template steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal template step definition: %w", err)
	}

	if def.Source == "" || def.Destination == "" {
		return actionseq.Step{}, ErrMissingPaths
	}

	return New(def), nil
}

// New returns the step for def. Its result is the list of written files.
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

		data, err := def.data(opts)
		if err != nil {
			return nil, err
		}

		return Render(steps.FS(opts), src, dst, data)
	})
}

func (def *Definition) data(opts *actionseq.Options) (map[string]any, error) {
	data := make(map[string]any)

	if opts.Props != nil {
		for k, v := range opts.Props.Values() {
			data[k] = v
		}
	}

	for k, v := range opts.Params {
		data[k] = v
	}

	extra, err := steps.ExpandAll(def.Data, opts)
	if err != nil {
		return nil, err
	}

	for k, v := range extra {
		data[k] = v
	}

	return data, nil
}

// Render renders src (a file or directory) into dst and returns the written paths.
func Render(fs afero.Fs, src, dst string, data map[string]any) ([]string, error) {
	info, err := fs.Stat(src)
	if err != nil {
		return nil, errors.Join(ErrRender, err)
	}

	if !info.IsDir() {
		out := strings.TrimSuffix(dst, tmplExt)
		if err := renderFile(fs, src, out, info.Mode(), data); err != nil {
			return nil, err
		}

		return []string{out}, nil
	}

	var written []string

	err = afero.Walk(fs, src, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil || fi.IsDir() {
			return walkErr
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}

		out := strings.TrimSuffix(filepath.Join(dst, rel), tmplExt)
		if err := renderFile(fs, p, out, fi.Mode(), data); err != nil {
			return err
		}

		written = append(written, out)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return written, nil
}

func renderFile(fs afero.Fs, src, dst string, mode os.FileMode, data map[string]any) error {
	body, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.Join(ErrRender, err)
	}

	tmpl, err := template.New(filepath.Base(src)).Option("missingkey=zero").Parse(string(body))
	if err != nil {
		return errors.Join(ErrRender, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return errors.Join(ErrRender, err)
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Join(ErrRender, err)
	}

	if err := afero.WriteFile(fs, dst, buf.Bytes(), mode.Perm()); err != nil {
		return errors.Join(ErrRender, err)
	}

	return nil
}
