// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execstep

import (
	"context"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/process"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgv(t *testing.T) {
	opts := &actionseq.Options{Params: map[string]any{"pm": "yarn", "pkg": "left pad"}}

	tests := []struct {
		name string
		def  Definition
		want []string
	}{
		{name: "split command", def: Definition{Command: `$pm add "$pkg"`}, want: []string{"yarn", "add", "left pad"}},
		{name: "explicit args", def: Definition{Command: "$pm", Args: []string{"add", "$pkg"}}, want: []string{"yarn", "add", "left pad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.def.Argv(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&Definition{Command: "$nothing"}).Argv(opts)
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestCreate_Validation(t *testing.T) {
	_, err := stepregistry.CreateStepFromYAML(context.Background(), []byte("type: exec\nname: x\n"))
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestRun_NotOnPath(t *testing.T) {
	stubs := gostub.Stub(&process.LookPath, func(string) (string, error) { return "", process.ErrCommandNotFound })
	defer stubs.Reset()

	st := New(&Definition{BaseDefinition: steps.BaseDefinition{Name: "install"}, Command: "npm install"})

	_, err := st.Func(context.Background(), &actionseq.Options{})
	require.ErrorIs(t, err, process.ErrCommandNotFound)
}

func TestRun_Echo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires echo on PATH")
	}

	rec := &progress.Recorder{}
	st := New(&Definition{BaseDefinition: steps.BaseDefinition{Name: "say"}, Command: "echo $word"})

	v, err := st.Func(context.Background(), &actionseq.Options{Params: map[string]any{"word": "hi"}, Progress: rec})
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "hi", last.Text)
}
