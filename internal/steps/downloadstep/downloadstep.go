// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package downloadstep fetches a remote source with go-getter and copies it into the project.
package downloadstep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/spf13/afero"
)

const (
	stepType      = "download"
	stagingPrefix = "arcli-"
)

var (
	// ErrMissingURL is returned for a definition without a URL.
	ErrMissingURL = errors.New("url is required")
	// ErrDownload is returned when the source cannot be fetched.
	ErrDownload = errors.New("download failed")
)

// Get fetches req. It is a variable so tests can avoid the network.
var Get = func(ctx context.Context, req *getter.Request) error {
	cli := getter.Client{
		DisableSymlinks: true,
	}

	_, err := cli.Get(ctx, req)

	return err
}

func init() {
	stepregistry.Register(stepType, &Maker{})
}

// Definition is the manifest definition of a download step.
type Definition struct {
	steps.BaseDefinition `yaml:",inline"`
	// URL is any go-getter source: an http archive, a git repository, a local path.
	URL         string `yaml:"url" json:"url"`
	Destination string `yaml:"destination,omitempty" json:"destination,omitempty"`
	// Strip copies the contents of a single top level directory instead of the directory itself.
	Strip bool `yaml:"strip,omitempty" json:"strip,omitempty"`
}

var _ steps.Maker = (*Maker)(nil)

// Maker creates download steps.
type Maker struct{}

// Create implements steps.Maker.
func (m *Maker) Create(_ context.Context, payload []byte) (actionseq.Step, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(payload, def); err != nil {
		return actionseq.Step{}, fmt.Errorf("failed to unmarshal download step definition: %w", err)
	}

	if def.URL == "" {
		return actionseq.Step{}, ErrMissingURL
	}

	return New(def), nil
}

// New returns the step for def. Its result is the destination directory.
func New(def *Definition) actionseq.Step {
	return def.Step(func(ctx context.Context, opts *actionseq.Options) (any, error) {
		src, err := steps.Expand(def.URL, opts)
		if err != nil {
			return nil, err
		}

		dst, err := steps.Path(def.Destination, opts)
		if err != nil {
			return nil, err
		}

		pwd, err := def.Dir(opts)
		if err != nil {
			return nil, err
		}

		staging := filepath.Join(os.TempDir(), stagingPrefix+uuid.NewString())
		defer os.RemoveAll(staging) //nolint:errcheck

		req := &getter.Request{
			Src:     src,
			Dst:     filepath.Join(staging, "src"),
			Pwd:     pwd,
			GetMode: getter.ModeAny,
		}

		progress.OrNull(opts.Progress).Report(progress.NewEvent(def.Name, progress.EventProgress, "downloading "+src))
		ctxlog.Debug(ctx, "downloading", "src", src, "staging", req.Dst)

		if err := Get(ctx, req); err != nil {
			return nil, errors.Join(ErrDownload, err)
		}

		from := req.Dst
		if def.Strip {
			from = stripRoot(from)
		}

		if err := steps.CopyTree(afero.NewOsFs(), from, steps.FS(opts), dst); err != nil {
			return nil, err
		}

		return dst, nil
	})
}

// stripRoot returns the only child of dir when it is a directory, and dir otherwise.
func stripRoot(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return dir
	}

	return filepath.Join(dir, entries[0].Name())
}
