// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"fmt"
	"testing"

	_ "github.com/matt-FFFFFF/arcli/internal/allsteps"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/manifest"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCtx = searchpath.Context{Root: "/opt/arcli", Cwd: "/work", Home: "/home/u"}

type fixture map[string]string

func (f fixture) fs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for p, body := range f {
		require.NoError(t, afero.WriteFile(fs, p, []byte(body), 0o644))
	}

	return fs
}

func command(name, layer string) string {
	return fmt.Sprintf(`
name: %s
description: from %s
actions:
  - name: run
    type: shell
    command_line: echo %s
`, name, layer, layer)
}

func layers() []searchpath.Layer {
	return []searchpath.Layer{
		{Name: "root", Globs: searchpath.Resolve([]string{"[root]/commands"}, testCtx)},
		{Name: "core", Globs: searchpath.Resolve([]string{"[cwd]/.core/.cli/commands"}, testCtx)},
		{Name: "project", Globs: searchpath.Resolve([]string{"[cwd]/.cli/commands"}, testCtx)},
		{Name: "home", Globs: searchpath.Resolve([]string{"[home]/.arcli/commands"}, testCtx)},
	}
}

func TestLoad_OverridePrecedence(t *testing.T) {
	fs := fixture{
		"/opt/arcli/commands/hello/index.yaml":         command("hello", "root"),
		"/work/.core/.cli/commands/hello/index.yml":    command("hello", "core"),
		"/work/.cli/commands/hello/index.yaml":         command("hello", "project"),
		"/opt/arcli/commands/install/index.yaml":       command("install", "root"),
		"/work/.core/.cli/commands/install/index.yaml": command("install", "core"),
		"/opt/arcli/commands/update/index.yaml":        command("update", "root"),
	}.fs(t)

	reg := commandregistry.New()
	l := New(fs, testCtx)

	require.NoError(t, l.LoadLayers(context.Background(), reg, layers()...))
	require.NoError(t, l.Diagnostics())

	want := map[string]string{"hello": "project", "install": "core", "update": "root"}
	for name, layer := range want {
		m, ok := reg.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, layer, m.Origin().Layer, name)
	}

	assert.Equal(t, 6, l.Loaded())
	assert.Equal(t, 3, reg.Len())
}

func TestLoad_Resilience(t *testing.T) {
	fs := fixture{
		"/opt/arcli/commands/a/index.yaml": command("alpha", "root"),
		"/opt/arcli/commands/b/index.yaml": "name: [broken",
		"/opt/arcli/commands/c/index.yaml": command("gamma", "root"),
	}.fs(t)

	reg := commandregistry.New()
	l := New(fs, testCtx)

	require.NoError(t, l.Load(context.Background(), reg, "/opt/arcli/commands"+searchpath.Suffix))

	assert.Equal(t, []string{"alpha", "gamma"}, reg.AllCommandNames())

	diags := l.Diagnostics()
	require.Error(t, diags)
	require.ErrorIs(t, diags, manifest.ErrDecode)
	assert.Contains(t, diags.Error(), "/opt/arcli/commands/b/index.yaml")

	m, _ := reg.Get("alpha")
	assert.Equal(t, LayerUnnamed, m.Origin().Layer)
}

func TestLoad_ClassificationAndErrors(t *testing.T) {
	fs := fixture{
		"/work/.cli/commands/notes/index.yaml":   "title: not a command\n",
		"/work/.cli/commands/both/index.yaml":    "name: x\nid: y z\n",
		"/work/.cli/commands/unk/index.yaml":     "name: unk\nactions:\n  - name: a\n    type: teleport\n",
		"/work/.cli/commands/plugin/index.hcl":   "id = \"reactium <plugin>\"\naction \"mk\" {\n  type = \"mkdir\"\n  path = \"${cwd}/plugins\"\n}\n",
		"/work/.cli/commands/reactium/index.yml": "name: reactium\n",
		"/work/.cli/commands/flagdef/index.yaml": "name: flagdef\nflags:\n  - name: count\n    type: int\n    default: ten\n",
	}.fs(t)

	reg := commandregistry.New()
	l := New(fs, testCtx)

	require.NoError(t, l.Load(context.Background(), reg, "/work/.cli/commands"+searchpath.Suffix))

	assert.Equal(t, []string{"reactium"}, reg.AllCommandNames())
	assert.Equal(t, []string{"reactium.plugin"}, reg.AllSubcommandIDs())

	diags := l.Diagnostics()
	require.ErrorIs(t, diags, manifest.ErrMalformed)
	assert.Contains(t, diags.Error(), "both/index.yaml")
	assert.Contains(t, diags.Error(), "unk/index.yaml")
	assert.Contains(t, diags.Error(), "flagdef/index.yaml")
	assert.NotContains(t, diags.Error(), "notes/index.yaml")
}

func TestLoad_PanicIsRecovered(t *testing.T) {
	fs := fixture{
		"/c/a/index.yaml": command("alpha", "root"),
		"/c/b/index.hcl":  "anything",
	}.fs(t)

	reg := commandregistry.New()
	l := New(fs, testCtx, WithParser(".hcl", func(string, []byte, searchpath.Context) (*manifest.Manifest, error) {
		panic("parser exploded")
	}))

	require.NoError(t, l.Load(context.Background(), reg, "/c"+searchpath.Suffix))
	assert.Equal(t, []string{"alpha"}, reg.AllCommandNames())
	require.ErrorIs(t, l.Diagnostics(), ErrPanic)
}

func TestLoad_MissingBaseAndCancel(t *testing.T) {
	reg := commandregistry.New()
	l := New(afero.NewMemMapFs(), testCtx)

	require.NoError(t, l.Load(context.Background(), reg, "/nowhere"+searchpath.Suffix))
	require.NoError(t, l.Diagnostics())
	assert.Equal(t, 0, reg.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Load(ctx, reg, "/nowhere"+searchpath.Suffix), context.Canceled)
}

func TestLoad_Repeated(t *testing.T) {
	fs := fixture{
		"/opt/arcli/commands/hello/index.yaml": command("hello", "root"),
		"/work/.cli/commands/hello/index.yaml": command("hello", "project"),
	}.fs(t)

	reg := commandregistry.New()
	l := New(fs, testCtx)
	all := layers()

	require.NoError(t, l.LoadLayers(context.Background(), reg, all[0]))
	m, _ := reg.Get("hello")
	assert.Equal(t, "root", m.Origin().Layer)

	require.NoError(t, l.LoadLayers(context.Background(), reg, all...))
	m, _ = reg.Get("hello")
	assert.Equal(t, "project", m.Origin().Layer)
}
