// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commander

import (
	"bytes"
	"context"
	"strings"
	"testing"

	_ "github.com/matt-FFFFFF/arcli/internal/allsteps"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/manifest"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func newProps(fs afero.Fs, input string, out *bytes.Buffer) *props.Props {
	return props.New(searchpath.Context{Cwd: "/work", Home: "/home/u"}, nil, nil,
		props.WithFS(fs),
		props.WithStreams(strings.NewReader(input), out, out),
		props.WithPrompter(props.NewReaderPrompter(strings.NewReader(input), out)),
	)
}

func runJob(t *testing.T, fs afero.Fs, input string, params map[string]any) (*actionseq.Results, error) {
	t.Helper()

	var out bytes.Buffer
	if params[formatFlag] == nil {
		params[formatFlag] = formatYAML
	}

	if params[destinationFlag] == nil {
		params[destinationFlag] = ".cli/commands"
	}

	opts := &actionseq.Options{Params: params, Props: newProps(fs, input, &out), Progress: &progress.Recorder{}}

	return generator.Run(context.Background(), Job(), opts)
}

func TestCommander_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()

	res, err := runJob(t, fs, "", map[string]any{nameFlag: "deploy"})
	require.NoError(t, err)
	file, ok := res.Get("render manifest")
	require.True(t, ok)
	assert.Equal(t, "/work/.cli/commands/deploy/index.yaml", file)

	b, err := afero.ReadFile(fs, "/work/.cli/commands/deploy/index.yaml")
	require.NoError(t, err)

	m, err := manifest.DecodeYAML(b)
	require.NoError(t, err)
	assert.Equal(t, Scaffold("deploy", ""), m)

	mod, err := m.Module(context.Background(), stepregistry.DefaultRegistry, module.Source{Layer: "project"})
	require.NoError(t, err)
	assert.Equal(t, "deploy", mod.Key())
}

func TestCommander_HCLSubcommand(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := runJob(t, fs, "", map[string]any{idFlag: "reactium <plugin>", formatFlag: formatHCL})
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, "/work/.cli/commands/reactium/plugin/index.hcl")
	require.NoError(t, err)

	m, err := manifest.DecodeHCL(b, "index.hcl", searchpath.Context{})
	require.NoError(t, err)

	mod, err := m.Module(context.Background(), stepregistry.DefaultRegistry, module.Source{Layer: "project"})
	require.NoError(t, err)
	assert.Equal(t, "reactium.plugin", mod.Key())
}

func TestCommander_PromptsForName(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := runJob(t, fs, "build\n", map[string]any{})
	require.NoError(t, err)

	ok, err := afero.Exists(fs, "/work/.cli/commands/build/index.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommander_Overwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/.cli/commands/deploy/index.yml", []byte("name: deploy\n"), 0o644))

	_, err := runJob(t, fs, "n\n", map[string]any{nameFlag: "deploy", overwriteFlag: false})
	require.ErrorIs(t, err, generator.ErrCancelled)

	ok, _ := afero.Exists(fs, "/work/.cli/commands/deploy/index.yaml")
	assert.False(t, ok)

	_, err = runJob(t, fs, "y\n", map[string]any{nameFlag: "deploy", overwriteFlag: false})
	require.NoError(t, err)

	_, err = runJob(t, fs, "", map[string]any{nameFlag: "deploy", overwriteFlag: true})
	require.NoError(t, err)
}

func TestCommander_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := runJob(t, fs, "", map[string]any{nameFlag: "deploy", formatFlag: "toml"})
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = runJob(t, fs, "", map[string]any{nameFlag: "two words"})
	require.ErrorIs(t, err, manifest.ErrMalformed)

	_, err = runJob(t, fs, "\n", map[string]any{})
	require.ErrorIs(t, err, ErrMissingName)

	for _, id := range []string{"reactium", "<plugin>", "reactium."} {
		_, err = runJob(t, fs, "", map[string]any{idFlag: id})
		require.ErrorIs(t, err, module.ErrInvalidID, id)
	}

	ok, err := afero.DirExists(fs, "/work/.cli/commands/reactium")
	require.NoError(t, err)
	assert.False(t, ok, "nothing is written for an invalid id")
}

func TestCommander_CLI(t *testing.T) {
	fs := afero.NewMemMapFs()

	var out bytes.Buffer

	mod, err := Module()
	require.NoError(t, err)

	root := &cli.Command{Name: "arcli", Writer: &out}
	require.NoError(t, mod.Register(root, newProps(fs, "", &out)))
	require.NoError(t, root.Run(context.Background(), []string{"arcli", "commander", "-f", "hcl", "release"}))

	ok, err := afero.Exists(fs, "/work/.cli/commands/release/index.hcl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Command created")
}
