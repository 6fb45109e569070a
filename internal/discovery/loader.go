// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/manifest"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/spf13/afero"
)

// LayerUnnamed is the layer recorded for modules loaded from globs without a layer.
const LayerUnnamed = "path"

var (
	// ErrNoParser is returned for a file whose extension has no parser.
	ErrNoParser = errors.New("no parser for file extension")
	// ErrPanic is returned when decoding a file panics.
	ErrPanic = errors.New("panic while loading manifest")
)

// ParseFunc decodes the contents of a manifest file.
type ParseFunc func(path string, data []byte, ctx searchpath.Context) (*manifest.Manifest, error)

// Loader loads manifests from an afero filesystem.
type Loader struct {
	fs      afero.Fs
	ctx     searchpath.Context
	steps   stepregistry.Registry
	parsers map[string]ParseFunc

	mu     sync.Mutex
	diags  *multierror.Error
	loaded int
}

// Option configures a Loader.
type Option func(*Loader)

// WithStepRegistry sets the registry used to build manifest actions.
func WithStepRegistry(reg stepregistry.Registry) Option {
	return func(l *Loader) { l.steps = reg }
}

// WithParser registers fn for files with extension ext, e.g. ".yaml".
func WithParser(ext string, fn ParseFunc) Option {
	return func(l *Loader) { l.parsers[ext] = fn }
}

// New creates a Loader reading from fs. ctx supplies the variables of HCL manifests.
func New(fs afero.Fs, ctx searchpath.Context, opts ...Option) *Loader {
	l := &Loader{
		fs:    fs,
		ctx:   ctx,
		steps: stepregistry.DefaultRegistry,
		parsers: map[string]ParseFunc{
			".yaml": parseYAML,
			".yml":  parseYAML,
			".hcl":  parseHCL,
		},
	}

	for _, o := range opts {
		o(l)
	}

	return l
}

func parseYAML(_ string, data []byte, _ searchpath.Context) (*manifest.Manifest, error) {
	return manifest.DecodeYAML(data)
}

func parseHCL(p string, data []byte, ctx searchpath.Context) (*manifest.Manifest, error) {
	return manifest.DecodeHCL(data, p, ctx)
}

// Load expands globs and registers every manifest found, recording LayerUnnamed as the layer.
// Decode failures are logged and kept in Diagnostics; Load only fails on a cancelled context.
func (l *Loader) Load(ctx context.Context, reg *commandregistry.Registry, globs ...string) error {
	return l.LoadLayer(ctx, reg, searchpath.Layer{Name: LayerUnnamed, Globs: globs})
}

// LoadLayers loads each layer in order.
func (l *Loader) LoadLayers(ctx context.Context, reg *commandregistry.Registry, layers ...searchpath.Layer) error {
	for _, layer := range layers {
		if err := l.LoadLayer(ctx, reg, layer); err != nil {
			return err
		}
	}

	return nil
}

// LoadLayer loads the globs of one layer, in order.
func (l *Loader) LoadLayer(ctx context.Context, reg *commandregistry.Registry, layer searchpath.Layer) error {
	for _, glob := range layer.Globs {
		if err := ctx.Err(); err != nil {
			return err
		}

		matches, err := searchpath.Glob(l.fs, glob)
		if err != nil {
			l.record(ctx, glob, err)
			continue
		}

		ctxlog.Debug(ctx, "expanded search path", "layer", layer.Name, "glob", glob, "matches", len(matches))

		for _, file := range matches {
			l.loadFile(ctx, reg, module.Source{Layer: layer.Name, Path: file})
		}
	}

	return nil
}

func (l *Loader) loadFile(ctx context.Context, reg *commandregistry.Registry, src module.Source) {
	m, err := l.decode(ctx, src)

	switch {
	case errors.Is(err, manifest.ErrNotCommand):
		ctxlog.Debug(ctx, "skipping file without a command", "path", src.Path)
		return
	case err != nil:
		l.record(ctx, src.Path, err)
		return
	}

	prev, err := reg.Put(m)
	if err != nil {
		l.record(ctx, src.Path, err)
		return
	}

	if prev != nil {
		ctxlog.Debug(ctx, "command overridden", "key", m.Key(), "by", src.String(), "was", prev.Origin().String())
	}

	l.mu.Lock()
	l.loaded++
	l.mu.Unlock()
}

func (l *Loader) decode(ctx context.Context, src module.Source) (m module.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	parse, ok := l.parsers[path.Ext(src.Path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoParser, path.Ext(src.Path))
	}

	data, err := afero.ReadFile(l.fs, src.Path)
	if err != nil {
		return nil, err
	}

	man, err := parse(src.Path, data, l.ctx)
	if err != nil {
		return nil, err
	}

	return man.Module(ctx, l.steps, src)
}

func (l *Loader) record(ctx context.Context, where string, err error) {
	ctxlog.Warn(ctx, "failed to load command", "path", where, "error", err)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.diags = multierror.Append(l.diags, fmt.Errorf("%s: %w", where, err))
}

// Diagnostics returns every error recorded so far, or nil.
func (l *Loader) Diagnostics() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.diags.ErrorOrNil()
}

// Loaded returns the number of modules registered so far.
func (l *Loader) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loaded
}
